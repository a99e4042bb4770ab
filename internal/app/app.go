package app

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"mealplanner/internal/config"
	"mealplanner/internal/db"
	groupdomain "mealplanner/internal/domain/group"
	ingredientsdomain "mealplanner/internal/domain/ingredients"
	mealsdomain "mealplanner/internal/domain/meals"
	"mealplanner/internal/domain/session"
	userdomain "mealplanner/internal/domain/user"
	grouprepo "mealplanner/internal/repository/postgres/group"
	ingredientsrepo "mealplanner/internal/repository/postgres/ingredients"
	mealsrepo "mealplanner/internal/repository/postgres/meals"
	userrepo "mealplanner/internal/repository/postgres/user"
	"mealplanner/internal/transport/httpserver"
	"mealplanner/internal/transport/httpserver/graph"
	"mealplanner/internal/transport/httpserver/handler/common"
	authmw "mealplanner/internal/transport/httpserver/middleware"
	"mealplanner/migrations"
	"mealplanner/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	application := &App{cfg: cfg, db: dbConn}

	if cfg.DB.AutoMigrate {
		if err := db.Migrate(dbConn, migrations.FS, log); err != nil {
			_ = application.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	codec, err := session.NewCodec(cfg.Session.Secret)
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	log.Info("app: initializing services")
	services := graph.Services{
		Auth:        userdomain.NewService(userrepo.NewPostgres(dbConn), userdomain.NewBcryptHasher(cfg.Session.BcryptCost), codec),
		Groups:      groupdomain.NewService(grouprepo.NewPostgres(dbConn)),
		Ingredients: ingredientsdomain.NewService(ingredientsrepo.NewPostgres(dbConn)),
		Meals:       mealsdomain.NewService(mealsrepo.NewPostgres(dbConn)),
	}

	schema, err := graph.NewSchema(graph.NewResolver(services, log))
	if err != nil {
		_ = application.Close()
		return nil, fmt.Errorf("graphql schema: %w", err)
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, common.New(sqlDB, log), schema, authmw.NewSessionAuth(codec, log), log)

	log.Info("app: initializing http server")
	application.httpServer = httpserver.New(cfg, router)
	return application, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
