package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/config"
	"calyx/faults"
	"calyx/filemgr"
	"calyx/models"
	"calyx/mq"
	"calyx/repo"
	"calyx/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type productBody struct {
	ProductTitle        string   `json:"productTitle"`
	ProductPrice        float64  `json:"productPrice"`
	ProductDescription  string   `json:"productDescription"`
	ProductPermalink    string   `json:"productPermalink"`
	ProductStock        *int     `json:"productStock"`
	ProductStockDisable bool     `json:"productStockDisable"`
	ProductSubscription bool     `json:"productSubscription"`
	ProductPublished    bool     `json:"productPublished"`
	ProductTags         string   `json:"productTags"`
	ProductComment      bool     `json:"productComment"`
	ProductTagsList     []string `json:"-"`
}

func (b *productBody) validate() error {
	if b.ProductTitle == "" {
		return faults.Invalid("productTitle", "is required")
	}
	if b.ProductPrice <= 0 {
		return faults.Invalid("productPrice", "should be greater than zero")
	}
	return nil
}

// permalinkTaken reports whether another product already owns the permalink.
func permalinkTaken(ctx context.Context, permalink, excludeID string) (bool, error) {
	filter := bson.M{"productPermalink": permalink}
	if excludeID != "" {
		filter["productId"] = bson.M{"$ne": excludeID}
	}
	count, err := repo.Products().Count(ctx, filter)
	return count > 0, err
}

// CreateProduct handles POST /api/admin/product/insert.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("CreateProduct decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	permalink := body.ProductPermalink
	if permalink == "" {
		permalink = slug.Make(body.ProductTitle)
	} else {
		permalink = slug.Make(permalink)
	}
	taken, err := permalinkTaken(ctx, permalink, "")
	if err != nil {
		log.Println("CreateProduct permalink check error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error inserting product")
		return
	}
	if taken {
		utils.RespondWithError(w, http.StatusBadRequest, "Permalink already exists. Pick a new one.")
		return
	}

	product := models.Product{
		ProductID:           uuid.NewString(),
		ProductPermalink:    permalink,
		ProductTitle:        body.ProductTitle,
		ProductPrice:        body.ProductPrice,
		ProductDescription:  utils.CleanHTML(body.ProductDescription),
		ProductStock:        body.ProductStock,
		ProductStockDisable: body.ProductStockDisable,
		ProductSubscription: body.ProductSubscription,
		ProductPublished:    body.ProductPublished,
		ProductTags:         utils.SplitTags(body.ProductTags),
		ProductComment:      body.ProductComment,
		ProductAddedDate:    time.Now(),
	}
	if err := repo.Products().Create(ctx, product); err != nil {
		log.Println("CreateProduct insert error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error inserting product")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "products", Method: "create", EntityId: product.ProductID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":   "New product successfully created",
		"productId": product.ProductID,
	})
}

// UpdateProduct handles PUT /api/admin/product/update/:productId.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productId")
	existing, err := repo.Products().FindOne(ctx, bson.M{"productId": productID})
	if err != nil {
		log.Println("UpdateProduct lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to save. Please try again")
		return
	}
	if existing == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Failed to save. Please try again")
		return
	}

	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("UpdateProduct decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	permalink := slug.Make(body.ProductPermalink)
	if permalink == "" {
		permalink = slug.Make(body.ProductTitle)
	}
	taken, err := permalinkTaken(ctx, permalink, productID)
	if err != nil {
		log.Println("UpdateProduct permalink check error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to save. Please try again")
		return
	}
	if taken {
		utils.RespondWithError(w, http.StatusBadRequest, "Permalink already exists. Pick a new one.")
		return
	}

	set := bson.M{
		"productTitle":        body.ProductTitle,
		"productPrice":        body.ProductPrice,
		"productDescription":  utils.CleanHTML(body.ProductDescription),
		"productPermalink":    permalink,
		"productStock":        body.ProductStock,
		"productStockDisable": body.ProductStockDisable,
		"productSubscription": body.ProductSubscription,
		"productPublished":    body.ProductPublished,
		"productTags":         utils.SplitTags(body.ProductTags),
		"productComment":      body.ProductComment,
	}
	if err := repo.Products().UpdateOne(ctx, bson.M{"productId": productID}, set); err != nil {
		log.Println("UpdateProduct error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to save. Please try again")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "products", Method: "update", EntityId: productID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Successfully saved"})
}

// PublishState handles POST /api/admin/product/publishedState.
func PublishState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		ID    string `json:"id"`
		State bool   `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("PublishState decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := repo.Products().UpdateOne(ctx, bson.M{"productId": body.ID}, bson.M{"productPublished": body.State}); err != nil {
		log.Println("PublishState error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update the published state")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "products", Method: "update", EntityId: body.ID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Published state updated"})
}

// DeleteProduct handles DELETE /api/admin/product/delete/:productId. Variants
// and uploaded images go with the product.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productId")
	if err := repo.Products().DeleteOne(ctx, bson.M{"productId": productID}); err != nil {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error deleting product")
		return
	}
	if err := repo.Variants().DeleteMany(ctx, bson.M{"product": productID}); err != nil {
		log.Println("DeleteProduct variants error:", err)
	}
	if err := filemgr.RemoveProductDir(productID); err != nil {
		log.Println("DeleteProduct images error:", err)
	}

	mq.Emit(ctx, models.Index{EntityType: "products", Method: "delete", EntityId: productID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product successfully deleted"})
}

// ListProducts handles GET /api/admin/products with paging and text search.
func ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cfg := config.Load()
	opts := utils.ParseQueryOptions(r, cfg.ProductsPerPage)

	filter := bson.M{}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"productTitle": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"productPermalink": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}

	page, err := repo.Products().Paginate(ctx, opts.Page, opts.Limit, filter, bson.M{"productAddedDate": -1})
	if err != nil {
		log.Println("ListProducts error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, page)
}

// UploadImage handles POST /api/admin/product/image/:productId (multipart).
// The first image uploaded becomes the main product image.
func UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productId")
	product, err := repo.Products().FindOne(ctx, bson.M{"productId": productID})
	if err != nil || product == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "File upload error. Please try again.")
		return
	}

	path, err := filemgr.SaveProductImage(r, productID)
	if err != nil {
		log.Println("UploadImage error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "File upload error. Please try again.")
		return
	}

	if product.ProductImage == "" {
		if err := repo.Products().UpdateOne(ctx, bson.M{"productId": productID}, bson.M{"productImage": path}); err != nil {
			log.Println("UploadImage set main image error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "File uploaded successfully", "path": path})
}

// SetMainImage handles POST /api/admin/product/setasmainimage.
func SetMainImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		ProductID string `json:"productId"`
		Image     string `json:"productImage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("SetMainImage decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := repo.Products().UpdateOne(ctx, bson.M{"productId": body.ProductID}, bson.M{"productImage": body.Image}); err != nil {
		log.Println("SetMainImage error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to set as main image. Please try again.")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Main image successfully set"})
}

// DeleteImage handles POST /api/admin/product/deleteimage.
func DeleteImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		ProductID string `json:"productId"`
		Image     string `json:"productImage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("DeleteImage decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := filemgr.RemoveImage(body.Image); err != nil {
		log.Println("DeleteImage remove error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Image not removed, please try again.")
		return
	}

	product, err := repo.Products().FindOne(ctx, bson.M{"productId": body.ProductID})
	if err == nil && product != nil && product.ProductImage == body.Image {
		if err := repo.Products().UpdateOne(ctx, bson.M{"productId": body.ProductID}, bson.M{"productImage": ""}); err != nil {
			log.Println("DeleteImage clear main image error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Image successfully deleted"})
}
