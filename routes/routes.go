package routes

import (
	"github.com/reconized/LittleLemon/configs"
	"github.com/reconized/LittleLemon/controllers"
	"github.com/reconized/LittleLemon/entity"
	"github.com/reconized/LittleLemon/middlewares"
	"github.com/reconized/LittleLemon/repository"
	"github.com/reconized/LittleLemon/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	roles := services.NewRoleResolver(groupRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	menuSvc := services.NewMenuService(menuRepo)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, userRepo, groupRepo)
	groupSvc := services.NewGroupService(db, groupRepo, userRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, roles)
	menuCtrl := controllers.NewMenuController(menuSvc, roles)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, roles)
	managerGroupCtrl := controllers.NewGroupController(groupSvc, roles, entity.GroupManager, "Manager")
	deliveryGroupCtrl := controllers.NewGroupController(groupSvc, roles, entity.GroupDeliveryCrew, "Delivery")

	throttle := middlewares.NewThrottle(cfg.ThrottleAnonRPM, cfg.ThrottleUserRPM)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthRequired(cfg.JWTSecret), authCtrl.Me)
	}

	// Categories: public read, manager write (checked in the controller)
	pub := r.Group("/", middlewares.AuthOptional(cfg.JWTSecret))
	{
		pub.GET("/categories", menuCtrl.ListCategories)
		pub.POST("/categories", menuCtrl.CreateCategory)
		pub.GET("/categories/:id", menuCtrl.GetCategory)
		pub.PATCH("/categories/:id", menuCtrl.UpdateCategory)
		pub.PUT("/categories/:id", menuCtrl.UpdateCategory)
		pub.DELETE("/categories/:id", menuCtrl.DeleteCategory)

		// Menu item listing is throttled, anon and authenticated separately
		pub.GET("/menu-items", throttle.Middleware(), menuCtrl.ListMenuItems)
		pub.POST("/menu-items", menuCtrl.CreateMenuItem)
		pub.GET("/menu-items/:id", menuCtrl.GetMenuItem)
		pub.PATCH("/menu-items/:id", menuCtrl.UpdateMenuItem)
		pub.PUT("/menu-items/:id", menuCtrl.UpdateMenuItem)
		pub.DELETE("/menu-items/:id", menuCtrl.DeleteMenuItem)

		// Group listing follows the original's read-for-all rule
		pub.GET("/groups/manager/users", managerGroupCtrl.List)
		pub.GET("/groups/delivery-crew/users", deliveryGroupCtrl.List)
	}

	// Group mutation requires a caller identity (manager check in controller)
	grp := r.Group("/groups", middlewares.AuthRequired(cfg.JWTSecret))
	{
		grp.POST("/manager/users", managerGroupCtrl.Add)
		grp.DELETE("/manager/users/:userId", managerGroupCtrl.Remove)
		grp.POST("/delivery-crew/users", deliveryGroupCtrl.Add)
		grp.DELETE("/delivery-crew/users/:userId", deliveryGroupCtrl.Remove)
	}

	// Cart
	cart := r.Group("/cart", middlewares.AuthRequired(cfg.JWTSecret))
	{
		cart.GET("/menu-items", cartCtrl.List)
		cart.POST("/menu-items", cartCtrl.Add)
		cart.DELETE("/menu-items", cartCtrl.Clear)
	}

	// Orders
	orders := r.Group("/orders", middlewares.AuthRequired(cfg.JWTSecret))
	{
		orders.GET("", orderCtrl.List)
		orders.POST("", orderCtrl.Place)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PATCH("/:id", orderCtrl.Update)
		orders.PUT("/:id", orderCtrl.Update)
		orders.DELETE("/:id", orderCtrl.Delete)
	}
}
