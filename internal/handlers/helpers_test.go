package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookcourier/internal/models"
)

func testContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = &bytes.Buffer{}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func paramOf(key, value string) gin.Param {
	return gin.Param{Key: key, Value: value}
}

type fakeUserStore struct {
	getByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	createFunc        func(ctx context.Context, user models.User) (string, error)
	updateProfileFunc func(ctx context.Context, id primitive.ObjectID, displayName, photoURL string) (int64, error)
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailFunc == nil {
		return nil, nil
	}
	return f.getByEmailFunc(ctx, email)
}

func (f *fakeUserStore) Create(ctx context.Context, user models.User) (string, error) {
	if f.createFunc == nil {
		return "", nil
	}
	return f.createFunc(ctx, user)
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, displayName, photoURL string) (int64, error) {
	if f.updateProfileFunc == nil {
		return 1, nil
	}
	return f.updateProfileFunc(ctx, id, displayName, photoURL)
}

type fakeBookStore struct {
	createFunc          func(ctx context.Context, book models.Book) (string, error)
	latestFunc          func(ctx context.Context, skip, limit int64) ([]models.Book, error)
	getByIDFunc         func(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	togglePublishFunc   func(ctx context.Context, id primitive.ObjectID) (string, error)
	updateFieldsFunc    func(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	listByLibrarianFunc func(ctx context.Context, email string) ([]models.Book, error)
	librarianOrdersFunc func(ctx context.Context, email string) ([]bson.M, error)
	pushOrderEntryFunc  func(ctx context.Context, id primitive.ObjectID, entry models.OrderEntry) error
	addReviewFunc       func(ctx context.Context, id primitive.ObjectID, review models.Review) error
}

func (f *fakeBookStore) Create(ctx context.Context, book models.Book) (string, error) {
	if f.createFunc == nil {
		return "", nil
	}
	return f.createFunc(ctx, book)
}

func (f *fakeBookStore) Latest(ctx context.Context, skip, limit int64) ([]models.Book, error) {
	if f.latestFunc == nil {
		return nil, nil
	}
	return f.latestFunc(ctx, skip, limit)
}

func (f *fakeBookStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	if f.getByIDFunc == nil {
		return nil, nil
	}
	return f.getByIDFunc(ctx, id)
}

func (f *fakeBookStore) TogglePublish(ctx context.Context, id primitive.ObjectID) (string, error) {
	if f.togglePublishFunc == nil {
		return "", nil
	}
	return f.togglePublishFunc(ctx, id)
}

func (f *fakeBookStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	if f.updateFieldsFunc == nil {
		return 1, nil
	}
	return f.updateFieldsFunc(ctx, id, fields)
}

func (f *fakeBookStore) ListByLibrarian(ctx context.Context, email string) ([]models.Book, error) {
	if f.listByLibrarianFunc == nil {
		return nil, nil
	}
	return f.listByLibrarianFunc(ctx, email)
}

func (f *fakeBookStore) LibrarianOrders(ctx context.Context, email string) ([]bson.M, error) {
	if f.librarianOrdersFunc == nil {
		return nil, nil
	}
	return f.librarianOrdersFunc(ctx, email)
}

func (f *fakeBookStore) PushOrderEntry(ctx context.Context, id primitive.ObjectID, entry models.OrderEntry) error {
	if f.pushOrderEntryFunc == nil {
		return nil
	}
	return f.pushOrderEntryFunc(ctx, id, entry)
}

func (f *fakeBookStore) AddReview(ctx context.Context, id primitive.ObjectID, review models.Review) error {
	if f.addReviewFunc == nil {
		return nil
	}
	return f.addReviewFunc(ctx, id, review)
}

type fakeOrderStore struct {
	insertFunc          func(ctx context.Context, doc bson.M) (string, error)
	listAllFunc         func(ctx context.Context) ([]models.Order, error)
	listByEmailFunc     func(ctx context.Context, email string) ([]models.Order, error)
	listPaidByEmailFunc func(ctx context.Context, email string) ([]models.Order, error)
	setStatusFunc       func(ctx context.Context, id primitive.ObjectID, status string) (int64, error)
	markPaidFunc        func(ctx context.Context, id primitive.ObjectID, paymentID string, at time.Time) (int64, error)
}

func (f *fakeOrderStore) Insert(ctx context.Context, doc bson.M) (string, error) {
	if f.insertFunc == nil {
		return "", nil
	}
	return f.insertFunc(ctx, doc)
}

func (f *fakeOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	if f.listAllFunc == nil {
		return nil, nil
	}
	return f.listAllFunc(ctx)
}

func (f *fakeOrderStore) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	if f.listByEmailFunc == nil {
		return nil, nil
	}
	return f.listByEmailFunc(ctx, email)
}

func (f *fakeOrderStore) ListPaidByEmail(ctx context.Context, email string) ([]models.Order, error) {
	if f.listPaidByEmailFunc == nil {
		return nil, nil
	}
	return f.listPaidByEmailFunc(ctx, email)
}

func (f *fakeOrderStore) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error) {
	if f.setStatusFunc == nil {
		return 1, nil
	}
	return f.setStatusFunc(ctx, id, status)
}

func (f *fakeOrderStore) MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID string, at time.Time) (int64, error) {
	if f.markPaidFunc == nil {
		return 1, nil
	}
	return f.markPaidFunc(ctx, id, paymentID, at)
}
