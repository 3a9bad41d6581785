package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/personal-finance/internal/auth"
	"github.com/frahmantamala/personal-finance/internal/category"
	categoryPostgres "github.com/frahmantamala/personal-finance/internal/category/postgres"
	"github.com/frahmantamala/personal-finance/internal/transaction"
	transactionPostgres "github.com/frahmantamala/personal-finance/internal/transaction/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqliteCategory mirrors the categories table without postgres defaults
type sqliteCategory struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    *int64    `gorm:"column:user_id"`
	IsSystem  bool      `gorm:"column:is_system;default:false"`
	Name      string    `gorm:"column:name;not null"`
	Type      string    `gorm:"column:type;not null"`
	Icon      string    `gorm:"column:icon"`
	Color     string    `gorm:"column:color"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sqliteCategory) TableName() string { return "categories" }

// sqliteTransaction mirrors the transactions table without postgres defaults
type sqliteTransaction struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Type      string    `gorm:"column:type;not null"`
	Amount    float64   `gorm:"column:amount;not null"`
	Category  string    `gorm:"column:category;not null"`
	Note      string    `gorm:"column:note"`
	Date      time.Time `gorm:"column:date"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sqliteTransaction) TableName() string { return "transactions" }

var _ = Describe("Category Handler Integration", func() {
	var (
		db              *gorm.DB
		transactionRepo *transactionPostgres.TransactionRepository
		handler         *category.Handler
	)

	ownerID := int64(7)

	authed := func(r *http.Request, userID int64) *http.Request {
		ctx := auth.ContextWithUser(r.Context(), &auth.Identity{UserID: userID})
		return r.WithContext(ctx)
	}

	withURLParam := func(r *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteCategory{}, &sqliteTransaction{})
		Expect(err).NotTo(HaveOccurred())

		err = db.Exec(`CREATE UNIQUE INDEX idx_categories_owner_name_type
			ON categories (user_id, name, type)
			WHERE NOT is_system`).Error
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := categoryPostgres.NewCategoryRepository(db)
		transactionRepo = transactionPostgres.NewTransactionRepository(db)
		service := category.NewService(repo, transactionRepo, slogger)
		handler = category.NewHandler(service)
	})

	Describe("CreateCategory", func() {
		It("should create a category and respond 201", func() {
			body := strings.NewReader(`{"name":"Groceries","type":"expense"}`)
			req := authed(httptest.NewRequest(http.MethodPost, "/categories", body), ownerID)
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var response category.CategoryResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Category.Name).To(Equal("Groceries"))
			Expect(response.Category.Icon).To(Equal(category.DefaultIcon))
		})

		It("should respond 409 on a duplicate", func() {
			body := strings.NewReader(`{"name":"Groceries","type":"expense"}`)
			req := authed(httptest.NewRequest(http.MethodPost, "/categories", body), ownerID)
			handler.CreateCategory(httptest.NewRecorder(), req)

			body = strings.NewReader(`{"name":"Groceries","type":"expense"}`)
			req = authed(httptest.NewRequest(http.MethodPost, "/categories", body), ownerID)
			w := httptest.NewRecorder()
			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("should respond 400 on an invalid type", func() {
			body := strings.NewReader(`{"name":"Groceries","type":"savings"}`)
			req := authed(httptest.NewRequest(http.MethodPost, "/categories", body), ownerID)
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should respond 401 without an identity", func() {
			body := strings.NewReader(`{"name":"Groceries","type":"expense"}`)
			req := httptest.NewRequest(http.MethodPost, "/categories", body)
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GetCategories", func() {
		BeforeEach(func() {
			for _, payload := range []string{
				`{"name":"Groceries","type":"expense"}`,
				`{"name":"Salary","type":"income"}`,
			} {
				req := authed(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(payload)), ownerID)
				w := httptest.NewRecorder()
				handler.CreateCategory(w, req)
				Expect(w.Code).To(Equal(http.StatusCreated))
			}
		})

		It("should list the owner's categories", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/categories", nil), ownerID)
			w := httptest.NewRecorder()

			handler.GetCategories(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response category.CategoriesResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Categories).To(HaveLen(2))
		})

		It("should honor the type filter", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/categories?type=income", nil), ownerID)
			w := httptest.NewRecorder()

			handler.GetCategories(w, req)

			var response category.CategoriesResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Categories).To(HaveLen(1))
			Expect(response.Categories[0].Name).To(Equal("Salary"))
		})

		It("should return an empty list for a different user", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/categories", nil), ownerID+1)
			w := httptest.NewRecorder()

			handler.GetCategories(w, req)

			var response category.CategoriesResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Categories).To(HaveLen(0))
		})
	})

	Describe("GetCategory", func() {
		It("should respond 404 for a missing id", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/categories/999", nil), ownerID)
			req = withURLParam(req, "id", "999")
			w := httptest.NewRecorder()

			handler.GetCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should respond 400 for a malformed id", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/categories/abc", nil), ownerID)
			req = withURLParam(req, "id", "abc")
			w := httptest.NewRecorder()

			handler.GetCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DeleteCategory", func() {
		var created category.CategoryResponse

		BeforeEach(func() {
			body := strings.NewReader(`{"name":"Groceries","type":"expense"}`)
			req := authed(httptest.NewRequest(http.MethodPost, "/categories", body), ownerID)
			w := httptest.NewRecorder()
			handler.CreateCategory(w, req)
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		})

		It("should delete an unreferenced category", func() {
			id := strconv.FormatInt(created.Category.ID, 10)
			req := authed(httptest.NewRequest(http.MethodDelete, "/categories/"+id, nil), ownerID)
			req = withURLParam(req, "id", id)
			w := httptest.NewRecorder()

			handler.DeleteCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should respond 400 while transactions reference the category", func() {
			id := strconv.FormatInt(created.Category.ID, 10)
			err := transactionRepo.Create(&transaction.Transaction{
				UserID:   ownerID,
				Type:     "expense",
				Amount:   10,
				Category: id,
				Date:     time.Now(),
			})
			Expect(err).NotTo(HaveOccurred())

			req := authed(httptest.NewRequest(http.MethodDelete, "/categories/"+id, nil), ownerID)
			req = withURLParam(req, "id", id)
			w := httptest.NewRecorder()

			handler.DeleteCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var response map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response["message"]).To(Equal("cannot delete category with associated transactions"))
		})
	})
})
