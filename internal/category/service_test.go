package category_test

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/frahmantamala/personal-finance/internal/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// MockRepository implements category.RepositoryAPI for testing
type MockRepository struct {
	categories map[int64]*category.Category
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		categories: make(map[int64]*category.Category),
		nextID:     1,
	}
}

func (m *MockRepository) hasDuplicate(c *category.Category) bool {
	for _, existing := range m.categories {
		if existing.ID == c.ID || existing.IsSystem || c.IsSystem {
			continue
		}
		if existing.UserID != nil && c.UserID != nil &&
			*existing.UserID == *c.UserID && existing.Name == c.Name && existing.Type == c.Type {
			return true
		}
	}
	return false
}

func (m *MockRepository) Create(c *category.Category) error {
	if m.shouldFail {
		return m.failError
	}
	if m.hasDuplicate(c) {
		return category.ErrCategoryExists
	}
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = c
	return nil
}

func (m *MockRepository) CreateBatch(cs []*category.Category) error {
	if m.shouldFail {
		return m.failError
	}
	for _, c := range cs {
		if err := m.Create(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockRepository) ListSystem() ([]*category.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*category.Category
	for _, c := range m.categories {
		if c.IsSystem {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *MockRepository) ListOwned(ownerID int64, categoryType, search string) ([]*category.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*category.Category
	for _, c := range m.categories {
		if c.IsSystem || c.UserID == nil || *c.UserID != ownerID {
			continue
		}
		if categoryType != "" && c.Type != categoryType {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *MockRepository) GetOwned(id, ownerID int64) (*category.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	c, exists := m.categories[id]
	if !exists || c.IsSystem || c.UserID == nil || *c.UserID != ownerID {
		return nil, nil
	}
	return c, nil
}

func (m *MockRepository) Update(c *category.Category) error {
	if m.shouldFail {
		return m.failError
	}
	if m.hasDuplicate(c) {
		return category.ErrCategoryExists
	}
	m.categories[c.ID] = c
	return nil
}

func (m *MockRepository) Delete(id, ownerID int64) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.categories, id)
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddSystemCategory(name, categoryType, icon string) {
	c := &category.Category{
		IsSystem: true,
		Name:     name,
		Type:     categoryType,
		Icon:     icon,
		Color:    category.DefaultColor,
	}
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = c
}

// MockCounter implements category.TransactionCounter for testing
type MockCounter struct {
	counts map[string]int64
}

func NewMockCounter() *MockCounter {
	return &MockCounter{counts: make(map[string]int64)}
}

func (m *MockCounter) CountByCategoryRef(ownerID int64, categoryRef string) (int64, error) {
	return m.counts[categoryRef], nil
}

var _ = Describe("Category Service", func() {
	var (
		mockRepo    *MockRepository
		mockCounter *MockCounter
		service     *category.Service
	)

	ownerID := int64(7)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockCounter = NewMockCounter()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, mockCounter, logger)
	})

	Describe("Create", func() {
		It("should create a category with defaults for icon and color", func() {
			c, err := service.Create(ownerID, category.CreateCategoryDTO{
				Name: "Groceries",
				Type: category.TypeExpense,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.ID).To(BeNumerically(">", 0))
			Expect(c.Icon).To(Equal(category.DefaultIcon))
			Expect(c.Color).To(Equal(category.DefaultColor))
			Expect(c.IsSystem).To(BeFalse())
			Expect(*c.UserID).To(Equal(ownerID))
		})

		It("should keep explicit icon and color", func() {
			c, err := service.Create(ownerID, category.CreateCategoryDTO{
				Name:  "Groceries",
				Type:  category.TypeExpense,
				Icon:  "cart",
				Color: "#ff0000",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Icon).To(Equal("cart"))
			Expect(c.Color).To(Equal("#ff0000"))
		})

		It("should reject missing name or type", func() {
			_, err := service.Create(ownerID, category.CreateCategoryDTO{Type: category.TypeExpense})
			Expect(err).To(MatchError(category.ErrMissingFields))

			_, err = service.Create(ownerID, category.CreateCategoryDTO{Name: "Groceries"})
			Expect(err).To(MatchError(category.ErrMissingFields))
		})

		It("should reject an invalid type", func() {
			_, err := service.Create(ownerID, category.CreateCategoryDTO{
				Name: "Groceries",
				Type: "savings",
			})
			Expect(err).To(MatchError(category.ErrInvalidType))
		})

		It("should reject a duplicate name and type for the same owner", func() {
			_, err := service.Create(ownerID, category.CreateCategoryDTO{
				Name: "Groceries",
				Type: category.TypeExpense,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ownerID, category.CreateCategoryDTO{
				Name: "Groceries",
				Type: category.TypeExpense,
			})
			Expect(err).To(MatchError(category.ErrCategoryExists))
		})

		It("should allow the same name with a different type", func() {
			_, err := service.Create(ownerID, category.CreateCategoryDTO{
				Name: "Consulting",
				Type: category.TypeExpense,
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ownerID, category.CreateCategoryDTO{
				Name: "Consulting",
				Type: category.TypeIncome,
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("should return an empty slice, not nil, when the owner has none", func() {
			categories, err := service.List(ownerID, "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).NotTo(BeNil())
			Expect(categories).To(HaveLen(0))
		})

		It("should not leak other users' categories", func() {
			_, err := service.Create(ownerID, category.CreateCategoryDTO{Name: "Mine", Type: category.TypeExpense})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ownerID+1, category.CreateCategoryDTO{Name: "Theirs", Type: category.TypeExpense})
			Expect(err).NotTo(HaveOccurred())

			categories, err := service.List(ownerID, "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(1))
			Expect(categories[0].Name).To(Equal("Mine"))
		})
	})

	Describe("GetByID", func() {
		It("should return not found for a missing id", func() {
			_, err := service.GetByID(ownerID, 999)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})

		It("should return not found for another user's category", func() {
			c, err := service.Create(ownerID+1, category.CreateCategoryDTO{Name: "Theirs", Type: category.TypeExpense})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetByID(ownerID, c.ID)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})
	})

	Describe("Update", func() {
		var existing *category.Category

		BeforeEach(func() {
			var err error
			existing, err = service.Create(ownerID, category.CreateCategoryDTO{
				Name: "Groceries",
				Type: category.TypeExpense,
				Icon: "cart",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should overwrite only the supplied fields", func() {
			name := "Food"
			c, err := service.Update(ownerID, existing.ID, category.UpdateCategoryDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Name).To(Equal("Food"))
			Expect(c.Type).To(Equal(category.TypeExpense))
			Expect(c.Icon).To(Equal("cart"))
		})

		It("should overwrite with an empty value when the field is present", func() {
			empty := ""
			c, err := service.Update(ownerID, existing.ID, category.UpdateCategoryDTO{Icon: &empty})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Icon).To(Equal(""))
		})

		It("should reject an invalid type", func() {
			bad := "savings"
			_, err := service.Update(ownerID, existing.ID, category.UpdateCategoryDTO{Type: &bad})
			Expect(err).To(MatchError(category.ErrInvalidType))
		})

		It("should return not found for a missing id", func() {
			name := "Food"
			_, err := service.Update(ownerID, 999, category.UpdateCategoryDTO{Name: &name})
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})
	})

	Describe("Delete", func() {
		var existing *category.Category

		BeforeEach(func() {
			var err error
			existing, err = service.Create(ownerID, category.CreateCategoryDTO{
				Name: "Groceries",
				Type: category.TypeExpense,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should delete an unreferenced category", func() {
			Expect(service.Delete(ownerID, existing.ID)).To(Succeed())

			_, err := service.GetByID(ownerID, existing.ID)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})

		It("should refuse when transactions reference the category", func() {
			mockCounter.counts[strconv.FormatInt(existing.ID, 10)] = 3

			err := service.Delete(ownerID, existing.ID)
			Expect(err).To(MatchError(category.ErrCategoryInUse))

			// still there
			_, err = service.GetByID(ownerID, existing.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return not found for a missing id", func() {
			err := service.Delete(ownerID, 999)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})
	})

	Describe("CloneSystemSet", func() {
		BeforeEach(func() {
			mockRepo.AddSystemCategory("Salary", category.TypeIncome, "briefcase")
			mockRepo.AddSystemCategory("Food", category.TypeExpense, "utensils")
		})

		It("should copy every template into the owner's personal set", func() {
			Expect(service.CloneSystemSet(ownerID)).To(Succeed())

			categories, err := service.List(ownerID, "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(2))

			for _, c := range categories {
				Expect(c.IsSystem).To(BeFalse())
				Expect(*c.UserID).To(Equal(ownerID))
			}
		})

		It("should be a no-op when no templates exist", func() {
			mockRepo.categories = make(map[int64]*category.Category)
			Expect(service.CloneSystemSet(ownerID)).To(Succeed())

			categories, err := service.List(ownerID, "", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(0))
		})

		It("should propagate a repository failure", func() {
			mockRepo.SetShouldFail(true, errors.New("insert failed"))
			Expect(service.CloneSystemSet(ownerID)).NotTo(Succeed())
		})
	})
})
