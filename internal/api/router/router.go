package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/ecommerce/internal/api/handler"
	m "github.com/RoyceAzure/lab/ecommerce/internal/api/middleware"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *handler.Server, tokenMaker token.Maker, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/login", server.AuthHandler.Login)
		})

		r.Route("/products", func(r chi.Router) {
			// 商品查詢開放匿名訪問
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/categories", server.ProductHandler.ListCategories)
			r.Get("/{id}", server.ProductHandler.GetProduct)

			// 商品維護僅限管理員
			r.Group(func(r chi.Router) {
				r.Use(m.AuthMiddleware)
				r.Use(m.AdminMiddleware)
				r.Post("/", server.ProductHandler.CreateProduct)
				r.Put("/{id}", server.ProductHandler.UpdateProduct)
				r.Delete("/{id}", server.ProductHandler.DeleteProduct)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Get("/", server.CartHandler.GetCart)
			r.Post("/items", server.CartHandler.AddToCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Get("/", server.OrderHandler.ListOrders)
			r.Post("/", server.OrderHandler.CreateOrder)
			r.Post("/checkout", server.OrderHandler.CreateOrderFromCart)
		})
	})

	return r
}
