package product

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"bazaar_back_end/internal/apperr"
	"bazaar_back_end/internal/models"
	"bazaar_back_end/internal/services"
	"bazaar_back_end/internal/store"
)

const (
	maxImages    = 10
	listCacheKey = "products:all"
	listCacheTTL = 10 * time.Minute
)

// Handler serves the /products routes. Index and Cache may be nil; both are
// best-effort collaborators the catalog works without.
type Handler struct {
	Products store.ProductStore
	Users    store.UserStore
	Files    services.FileStore
	Index    services.ProductIndex
	Cache    *redis.Client
}

// Create handles POST /products/create-product.
func (h *Handler) Create(c *gin.Context) {
	in := formInput(c)
	price, stock, errs := in.validate()
	if len(errs) > 0 {
		c.Error(apperr.Validationf(errs...))
		return
	}

	files := formFiles(c)
	if len(files) == 0 {
		c.Error(apperr.Validationf("Please upload product images!"))
		return
	}
	if len(files) > maxImages {
		c.Error(apperr.Validationf("You can upload up to 10 product images!"))
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.ByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(apperr.NotFoundf("User not found!"))
			return
		}
		c.Error(err)
		return
	}

	images, err := h.saveImages(ctx, files)
	if err != nil {
		c.Error(err)
		return
	}

	now := time.Now().UTC()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Tags:        in.tagList(),
		Price:       price,
		Stock:       stock,
		Email:       in.Email,
		Images:      images,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Products.Insert(ctx, &p); err != nil {
		c.Error(err)
		return
	}

	go h.reindex(p)
	h.invalidateList(ctx)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully!",
		"product": p,
	})
}

// List handles GET /products/get-products; the full list is cached in Redis.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Cache != nil {
		if val, err := h.Cache.Get(ctx, listCacheKey).Result(); err == nil && val != "" {
			var cached []models.Product
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.JSON(http.StatusOK, gin.H{"products": cached})
				return
			}
		}
	}

	products, err := h.Products.All(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	if h.Cache != nil {
		if data, err := json.Marshal(products); err == nil {
			h.Cache.Set(ctx, listCacheKey, data, listCacheTTL)
		}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// MyProducts handles GET /products/my-products?email=.
func (h *Handler) MyProducts(c *gin.Context) {
	products, err := h.Products.ByOwner(c.Request.Context(), c.Query("email"))
	if err != nil {
		c.Error(err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get handles GET /products/product/:id.
func (h *Handler) Get(c *gin.Context) {
	p, err := h.load(c)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

// Update handles PUT /products/update-product/:id. All mutable fields are
// overwritten; images are replaced only when new files are supplied.
func (h *Handler) Update(c *gin.Context) {
	existing, err := h.load(c)
	if err != nil {
		c.Error(err)
		return
	}

	in := formInput(c)
	price, stock, errs := in.validate()
	if len(errs) > 0 {
		c.Error(apperr.Validationf(errs...))
		return
	}

	files := formFiles(c)
	if len(files) > maxImages {
		c.Error(apperr.Validationf("You can upload up to 10 product images!"))
		return
	}

	ctx := c.Request.Context()
	images := existing.Images
	if len(files) > 0 {
		images, err = h.saveImages(ctx, files)
		if err != nil {
			c.Error(err)
			return
		}
		go h.removeImages(existing.Images)
	}

	prevEmail := existing.Email
	existing.Name = in.Name
	existing.Description = in.Description
	existing.Category = in.Category
	existing.Tags = in.tagList()
	existing.Price = price
	existing.Stock = stock
	existing.Email = in.Email
	existing.Images = images
	existing.UpdatedAt = time.Now().UTC()

	if err := h.Products.Update(ctx, existing, prevEmail); err != nil {
		c.Error(err)
		return
	}

	go h.reindex(*existing)
	h.invalidateList(ctx)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully!",
		"product": existing,
	})
}

// Delete handles DELETE /products/delete-product/:id. Carts referencing the
// product are left alone; their entries resolve to null on read.
func (h *Handler) Delete(c *gin.Context) {
	p, err := h.load(c)
	if err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	if err := h.Products.Delete(ctx, p); err != nil {
		c.Error(err)
		return
	}

	go h.removeImages(p.Images)
	go h.deindex(p.ID)
	h.invalidateList(ctx)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!"})
}

// Search handles GET /products/search?q=. Elasticsearch first, store scan as
// the fallback when the index is down or empty.
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.Error(apperr.Validationf("Please provide a search query!"))
		return
	}

	ctx := c.Request.Context()
	if h.Index != nil {
		if results, err := h.Index.Search(ctx, query); err == nil && len(results) > 0 {
			c.JSON(http.StatusOK, gin.H{"products": results})
			return
		}
	}

	all, err := h.Products.All(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	matches := []models.Product{}
	for _, p := range all {
		if matchesQuery(p, query) {
			matches = append(matches, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"products": matches})
}

// ServeImage handles GET /products/:filename, streaming the stored object.
func (h *Handler) ServeImage(c *gin.Context) {
	object := c.Param("filename")
	reader, size, contentType, err := h.Files.Open(c.Request.Context(), object)
	if err != nil {
		if errors.Is(err, services.ErrObjectNotFound) {
			c.Error(apperr.NotFoundf("Image not found!"))
			return
		}
		c.Error(err)
		return
	}
	defer reader.Close()
	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}

// load resolves the :id param into a stored product.
func (h *Handler) load(c *gin.Context) (*models.Product, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, apperr.InvalidID("id")
	}
	p, err := h.Products.ByID(c.Request.Context(), gocql.UUID(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFoundf("Product not found!")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (h *Handler) saveImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	images := make([]string, 0, len(files))
	for _, f := range files {
		path, err := h.Files.Save(ctx, f)
		if err != nil {
			return nil, err
		}
		images = append(images, path)
	}
	return images, nil
}

func (h *Handler) removeImages(paths []string) {
	if h.Files == nil {
		return
	}
	ctx := context.Background()
	for _, p := range paths {
		object := strings.TrimPrefix(p, "/products/")
		if err := h.Files.Remove(ctx, object); err != nil {
			log.WithError(err).WithField("object", object).Warn("image cleanup failed")
		}
	}
}

func (h *Handler) reindex(p models.Product) {
	if h.Index == nil {
		return
	}
	if err := h.Index.Index(context.Background(), p); err != nil {
		log.WithError(err).WithField("product", p.ID).Warn("search indexing failed")
	}
}

func (h *Handler) deindex(id gocql.UUID) {
	if h.Index == nil {
		return
	}
	if err := h.Index.Remove(context.Background(), id.String()); err != nil {
		log.WithError(err).WithField("product", id).Warn("search deindexing failed")
	}
}

func (h *Handler) invalidateList(ctx context.Context) {
	if h.Cache != nil {
		h.Cache.Del(ctx, listCacheKey)
	}
}

func formInput(c *gin.Context) productInput {
	return productInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Tags:        c.PostForm("tags"),
		Price:       c.PostForm("price"),
		Stock:       c.PostForm("stock"),
		Email:       c.PostForm("email"),
	}
}

func formFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}

func matchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
