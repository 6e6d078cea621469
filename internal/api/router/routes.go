// Package router - hạ tầng định tuyến dùng chung: RoutePrefix, Router,
// đăng ký route với middleware và đăng ký bộ route resource chuẩn.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/Alqudimi/SocialSparkAI/internal/api/base/handler"
	"github.com/Alqudimi/SocialSparkAI/internal/api/middleware"
)

// ============================================================================
// ⚠️ QUAN TRỌNG: BUG FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 có bug với cách đăng ký middleware trực tiếp trong route.
// Middleware sẽ KHÔNG được gọi nếu dùng cách trực tiếp!
//
// ❌ CÁCH SAI (KHÔNG HOẠT ĐỘNG):
//    router.Get("/path", middleware.AuthMiddleware(), handler)
//    → Middleware sẽ KHÔNG được gọi, request sẽ bỏ qua middleware!
//
// ✅ CÁCH ĐÚNG (PHẢI DÙNG):
//    authMiddleware := middleware.AuthMiddleware()
//    RegisterRouteWithMiddleware(router, "/prefix", "GET", "/path", []fiber.Handler{authMiddleware}, handler)
//    → Middleware sẽ được gọi đúng cách thông qua .Use() method
//
// Nếu thấy route nào dùng cách trực tiếp router.Get/Post/Put/Patch/Delete(path, middleware, handler)
// → PHẢI SỬA NGAY thành RegisterRouteWithMiddleware!
//
// ============================================================================

// ResourceHandler định nghĩa interface cho các handler resource chuẩn (REST)
type ResourceHandler interface {
	InsertOne(c fiber.Ctx) error
	Find(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error
	CountDocuments(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// ResourceConfig cấu hình các operation được phép cho mỗi resource
type ResourceConfig struct {
	Create   bool // POST /resource
	List     bool // GET /resource
	Paginate bool // GET /resource/paginate
	GetById  bool // GET /resource/:id
	Update   bool // PATCH /resource/:id
	Delete   bool // DELETE /resource/:id
	Count    bool // GET /resource/count
}

// ReadWriteConfig là config chuẩn cho resource đầy đủ CRUD
var ReadWriteConfig = ResourceConfig{
	Create: true,
	List:   true, Paginate: true, GetById: true,
	Update: true, Delete: true,
	Count: true,
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware sử dụng .Use() method (cách đúng theo Fiber v3)
//
// ⚠️ QUAN TRỌNG: Đây là CÁCH DUY NHẤT hoạt động đúng trong Fiber v3!
//
// ❌ KHÔNG DÙNG cách trực tiếp: router.Get(path, middleware, handler) - middleware sẽ KHÔNG được gọi!
// ✅ PHẢI DÙNG cách này: RegisterRouteWithMiddleware với .Use() method
//
// Ví dụ sử dụng:
//
//	authMiddleware := middleware.AuthMiddleware()
//	RegisterRouteWithMiddleware(router, "/posts", "GET", "/calendar", []fiber.Handler{authMiddleware}, handler)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware sẽ chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw) // ← ĐÂY LÀ CÁCH ĐÚNG - dùng .Use() thay vì truyền trực tiếp
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "PATCH":
		routeGroup.Patch(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterResourceRoutes đăng ký bộ route resource chuẩn cho một collection.
// Tất cả route đều yêu cầu xác thực, dữ liệu tự động giới hạn theo user đang đăng nhập.
//
// Lưu ý thứ tự đăng ký: các path tĩnh (/count, /paginate) phải đăng ký TRƯỚC /:id
// để không bị route param nuốt mất.
func (r *Router) RegisterResourceRoutes(router fiber.Router, prefix string, h ResourceHandler, config ResourceConfig) {
	authMiddleware := middleware.AuthMiddleware()

	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", []fiber.Handler{authMiddleware}, h.CountDocuments)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/paginate", []fiber.Handler{authMiddleware}, h.FindWithPagination)
	}
	if config.Create {
		RegisterRouteWithMiddleware(router, prefix, "POST", "", []fiber.Handler{authMiddleware}, h.InsertOne)
	}
	if config.List {
		RegisterRouteWithMiddleware(router, prefix, "GET", "", []fiber.Handler{authMiddleware}, h.Find)
	}
	if config.GetById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/:id", []fiber.Handler{authMiddleware}, h.FindOneById)
	}
	if config.Update {
		RegisterRouteWithMiddleware(router, prefix, "PATCH", "/:id", []fiber.Handler{authMiddleware}, h.UpdateById)
	}
	if config.Delete {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/:id", []fiber.Handler{authMiddleware}, h.DeleteById)
	}
}

// RegisterFunc là hàm đăng ký route của một domain lên group v1
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Mỗi domain tự đăng ký route của mình thông qua RegisterFunc.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	// Khởi tạo route prefix
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)

	// Khởi tạo router
	router := NewRouter(app)

	// System routes (không cần xác thực)
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	v1.Get("/system/health", systemHandler.HandleHealth)

	// Domain routes
	for _, reg := range regs {
		if err := reg(v1, router); err != nil {
			return fmt.Errorf("failed to register routes: %w", err)
		}
	}

	return nil
}
