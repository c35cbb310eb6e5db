// Package products serves the customer-facing catalog: paginated listings,
// single product lookups by permalink or id, and full-text search backed by
// the in-memory index.
package products

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"calyx/config"
	"calyx/faults"
	"calyx/repo"
	"calyx/search"
	"calyx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type Handlers struct {
	cfg *config.Config
}

func NewHandlers(cfg *config.Config) *Handlers {
	return &Handlers{cfg: cfg}
}

func pageParam(ps httprouter.Params) int64 {
	page, _ := strconv.ParseInt(ps.ByName("pageNum"), 10, 64)
	if page < 1 {
		page = 1
	}
	return page
}

// GetProducts handles GET /api/products and /api/products/:pageNum:
// published products, newest first, with variants attached.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	results, err := repo.PaginateProductsWithVariants(ctx,
		pageParam(ps), h.cfg.ProductsPerPage,
		bson.M{"productPublished": true},
		bson.M{"productAddedDate": -1},
	)
	if err != nil {
		log.Println("GetProducts error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not retrieve products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"results":           results.Data,
		"totalProductCount": results.TotalItems,
		"productsPerPage":   h.cfg.ProductsPerPage,
	})
}

// GetProduct handles GET /api/product/:id, resolving by permalink first and
// falling back to the product id. Unpublished products 404 to customers.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("id")
	product, err := repo.Products().FindOne(ctx, bson.M{"productPermalink": id})
	if err == nil && product == nil {
		product, err = repo.Products().FindOne(ctx, bson.M{"productId": id})
	}
	if err != nil {
		log.Println("GetProduct error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not retrieve the product")
		return
	}
	if product == nil || !product.ProductPublished {
		utils.RespondWithFault(w, faults.ErrNotFound)
		return
	}

	variants, err := repo.Variants().FindMany(ctx, bson.M{"product": product.ProductID}, bson.M{"addedDate": 1}, 0)
	if err != nil {
		log.Println("GetProduct variants error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not retrieve the product")
		return
	}
	product.Variants = variants

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"product": product})
}

// Search handles GET /api/search/:searchTerm and its paginated variant,
// matching against the in-memory product index.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.searchBy(w, r, ps, ps.ByName("searchTerm"))
}

// Category handles GET /api/category/:cat: a tag search over the same index.
func (h *Handlers) Category(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.searchBy(w, r, ps, ps.ByName("cat"))
}

func (h *Handlers) searchBy(w http.ResponseWriter, r *http.Request, ps httprouter.Params, term string) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ids := search.Query("products", term)
	if ids == nil {
		ids = []string{}
	}
	results, err := repo.PaginateProductsWithVariants(ctx,
		pageParam(ps), h.cfg.ProductsPerPage,
		bson.M{"productId": bson.M{"$in": ids}, "productPublished": true},
		bson.M{"productAddedDate": -1},
	)
	if err != nil {
		log.Println("Search error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error searching for products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"results":           results.Data,
		"totalProductCount": results.TotalItems,
		"searchTerm":        term,
		"productsPerPage":   h.cfg.ProductsPerPage,
	})
}
