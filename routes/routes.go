package routes

import (
	"net/http"

	"calyx/admin"
	"calyx/cart"
	"calyx/checkout"
	"calyx/config"
	"calyx/customers"
	"calyx/middleware"
	"calyx/pages"
	"calyx/products"
	"calyx/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router, cfg *config.Config) {
	router.ServeFiles("/uploads/*filepath", http.Dir(cfg.UploadDir))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, cfg *config.Config) {
	h := products.NewHandlers(cfg)

	router.GET("/api/products", rl.Limit(h.GetProducts))
	router.GET("/api/products/:pageNum", rl.Limit(h.GetProducts))
	router.GET("/api/product/:id", rl.Limit(h.GetProduct))
	router.GET("/api/search/:searchTerm", rl.Limit(h.Search))
	router.GET("/api/category/:cat", rl.Limit(h.Category))

	router.GET("/api/product/:id/reviews", rl.Limit(h.GetReviews))
	router.POST("/api/product/:id/review", rl.Limit(middleware.Authenticate(h.AddReview)))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *cart.Handlers) {
	router.GET("/api/cart", rl.Limit(h.GetCart))
	router.POST("/api/cart/product", rl.Limit(h.AddToCart))
	router.POST("/api/cart/updatecart", rl.Limit(h.UpdateCart))
	router.POST("/api/cart/removeProduct", rl.Limit(h.RemoveFromCart))
	router.POST("/api/cart/empty", rl.Limit(h.EmptyCart))
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *checkout.Handlers) {
	router.GET("/api/checkout/cartdata", rl.Limit(h.CartData))
	router.POST("/api/checkout/adddiscountcode", rl.Limit(h.AddDiscountCode))
	router.POST("/api/checkout/removediscountcode", rl.Limit(h.RemoveDiscountCode))
	router.POST("/api/checkout/order/create", rl.Limit(h.CreateOrder))
	router.POST("/api/checkout/order/wiretransfer", rl.Limit(h.ConfirmWireTransfer))
	router.GET("/api/payment/:orderId", rl.Limit(h.Payment))
	router.GET("/api/orders/:orderId/updates", h.OrderUpdates)
}

func AddCustomerRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/customer/create", rl.Limit(customers.Register))
	router.POST("/api/customer/login", rl.Limit(customers.Login))
	router.POST("/api/customer/logout", rl.Limit(customers.Logout))
	router.POST("/api/customer/save", rl.Limit(customers.SaveToSession))
	router.PUT("/api/customer/update", rl.Limit(middleware.Authenticate(customers.Update)))
	router.POST("/api/customer/forgotten", rl.Limit(customers.ForgotPassword))
	router.POST("/api/customer/reset/:token", rl.Limit(customers.ResetPassword))
}

func AddPageRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/page/:slug", rl.Limit(pages.GetPage))
	router.GET("/api/menu", rl.Limit(pages.GetMenu))
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/admin/setup", rl.Limit(admin.Setup))
	router.POST("/api/admin/login", rl.Limit(admin.Login))

	router.GET("/api/admin/products", middleware.AdminOnly(admin.ListProducts))
	router.POST("/api/admin/product/insert", middleware.AdminOnly(admin.CreateProduct))
	router.PUT("/api/admin/product/update/:productId", middleware.AdminOnly(admin.UpdateProduct))
	router.POST("/api/admin/product/publishedState", middleware.AdminOnly(admin.PublishState))
	router.DELETE("/api/admin/product/delete/:productId", middleware.AdminOnly(admin.DeleteProduct))
	router.POST("/api/admin/product/image/:productId", middleware.AdminOnly(admin.UploadImage))
	router.POST("/api/admin/product/setasmainimage", middleware.AdminOnly(admin.SetMainImage))
	router.POST("/api/admin/product/deleteimage", middleware.AdminOnly(admin.DeleteImage))

	router.POST("/api/admin/product/addvariant", middleware.AdminOnly(admin.CreateVariant))
	router.POST("/api/admin/product/editvariant", middleware.AdminOnly(admin.UpdateVariant))
	router.DELETE("/api/admin/product/removevariant/:variantId", middleware.AdminOnly(admin.DeleteVariant))

	router.GET("/api/admin/orders", middleware.AdminOnly(admin.ListOrders))
	router.GET("/api/admin/order/view/:orderId", middleware.AdminOnly(admin.GetOrder))
	router.GET("/api/admin/order/invoice/:orderId", middleware.AdminOnly(admin.Invoice))
	router.POST("/api/admin/order/updateorder", middleware.AdminOnly(admin.UpdateOrderStatus))
	router.POST("/api/admin/order/updatetracking", middleware.AdminOnly(admin.UpdateOrderTracking))
	router.DELETE("/api/admin/order/delete/:orderId", middleware.AdminOnly(admin.DeleteOrder))

	router.GET("/api/admin/discounts", middleware.AdminOnly(admin.ListDiscounts))
	router.POST("/api/admin/discount/create", middleware.AdminOnly(admin.CreateDiscount))
	router.PUT("/api/admin/discount/update/:discountId", middleware.AdminOnly(admin.UpdateDiscount))
	router.DELETE("/api/admin/discount/delete/:discountId", middleware.AdminOnly(admin.DeleteDiscount))

	router.GET("/api/admin/pages", middleware.AdminOnly(admin.ListPages))
	router.POST("/api/admin/page", middleware.AdminOnly(admin.SavePage))
	router.DELETE("/api/admin/page/delete/:pageId", middleware.AdminOnly(admin.DeletePage))

	router.POST("/api/admin/menu/new", middleware.AdminOnly(admin.CreateMenuItem))
	router.PUT("/api/admin/menu/update", middleware.AdminOnly(admin.UpdateMenuItem))
	router.POST("/api/admin/menu/saveOrder", middleware.AdminOnly(admin.SortMenu))
	router.DELETE("/api/admin/menu/delete/:menuId", middleware.AdminOnly(admin.DeleteMenuItem))

	router.GET("/api/admin/customers", middleware.AdminOnly(admin.ListCustomers))
	router.GET("/api/admin/customer/view/:customerId", middleware.AdminOnly(admin.GetCustomer))
	router.DELETE("/api/admin/customer/delete/:customerId", middleware.AdminOnly(admin.DeleteCustomer))
	router.DELETE("/api/admin/review/delete/:reviewId", middleware.AdminOnly(admin.DeleteReview))
}
