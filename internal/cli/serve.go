package cli

import (
	"os"
	"os/signal"
	"syscall"

	"go-stockbook/internal/handler"
	"go-stockbook/internal/ws"
	"go-stockbook/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with the websocket event feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, err := buildEngine()
		if err != nil {
			return err
		}

		hub := ws.NewHub(logger.Logger)
		go hub.Run()

		invHandler := handler.NewInventoryHandler(eng, hub)
		dashHandler := handler.NewDashboardHandler(eng)

		app := fiber.New(fiber.Config{
			AppName: "stockbook",
		})

		app.Use(fiberlogger.New())
		app.Use(recover.New())
		app.Use(cors.New())
		app.Use(handler.MetricsMiddleware())

		api := app.Group("/api/v1")

		api.Get("/products", invHandler.GetProducts)
		api.Post("/products", invHandler.CreateProduct)
		api.Get("/products/search", invHandler.SearchProducts)
		api.Get("/products/:id", invHandler.GetProduct)
		api.Put("/products/:id", invHandler.UpdateProduct)
		api.Delete("/products/:id", invHandler.DeleteProduct)

		api.Get("/transactions", invHandler.GetTransactions)
		api.Post("/transactions", invHandler.CreateTransaction)

		api.Get("/dashboard", dashHandler.GetReport)

		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			hub.Register <- c
			defer func() { hub.Unregister <- c }()

			for {
				// keep alive loop
				if _, _, err := c.ReadMessage(); err != nil {
					break
				}
			}
		}))

		go func() {
			if err := app.Listen(":" + cfg.HTTPPort); err != nil {
				logger.Logger.Fatal().Err(err).Msg("server stopped")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Logger.Info().Msg("shutting down server")
		return app.Shutdown()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
