package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"bookcourier/internal/config"
	"bookcourier/internal/database"
	"bookcourier/internal/handlers"
	"bookcourier/internal/middleware"
	"bookcourier/internal/payments"
	"bookcourier/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureBookIndexes(db); err != nil {
		log.Printf("book index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	users := store.NewUsers(db)
	books := store.NewBooks(db)
	orders := store.NewOrders(db)
	centers := store.NewServiceCenters(db)
	pay := payments.NewStripe(config.AppEnv.StripeSecretKey, config.AppEnv.SiteDomain)

	verify := middleware.VerifyToken(config.AppEnv.JWTSecret)

	r := gin.Default()

	r.GET("/", handlers.Home())

	r.GET("/users/:email", handlers.GetUser(users))
	r.POST("/users", handlers.CreateUser(users))
	r.PATCH("/user/:id", handlers.UpdateUserProfile(users))

	r.POST("/book-add", handlers.CreateBook(books))
	r.GET("/books", handlers.GetBooks(books))
	r.GET("/books/:id", handlers.GetBook(books))
	r.PATCH("/books/:id", handlers.ToggleBookStatus(books))
	r.PATCH("/book-edit/:id", handlers.EditBook(books))
	r.GET("/librarian-book/:librarianEmail", verify, handlers.GetLibrarianBooks(books))

	r.POST("/book-order", handlers.PlaceOrder(orders, books))
	r.GET("/book-order", handlers.GetAllOrders(orders))
	r.GET("/book-order/:email", verify, handlers.GetOrdersByEmail(orders))
	r.PATCH("/book-order-status/:id", handlers.SetOrderStatus(orders))
	r.PATCH("/book-order-cancel/:id", handlers.CancelOrder(orders))
	r.GET("/order-book/:email", handlers.GetLibrarianOrders(books))
	r.GET("/payment-book/:email", handlers.GetPaidOrders(orders))

	r.POST("/create-checkout-session", handlers.CreateCheckoutSession(pay))
	r.PATCH("/payment-success", handlers.PaymentSuccess(pay, orders))

	r.PATCH("/book-rating-review", handlers.AddReview(books))

	r.GET("/service-center", handlers.GetServiceCenters(centers))

	r.Run(":" + config.AppEnv.Port)
}
