package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/Benhoward2000/howard-farm/internal/cart"
	"github.com/Benhoward2000/howard-farm/internal/checkout"
	"github.com/Benhoward2000/howard-farm/internal/config"
	"github.com/Benhoward2000/howard-farm/internal/contact"
	"github.com/Benhoward2000/howard-farm/internal/mailer"
	"github.com/Benhoward2000/howard-farm/internal/order"
	"github.com/Benhoward2000/howard-farm/internal/payment"
	"github.com/Benhoward2000/howard-farm/internal/product"
	"github.com/Benhoward2000/howard-farm/internal/shipping"
	"github.com/Benhoward2000/howard-farm/internal/slide"
	"github.com/Benhoward2000/howard-farm/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	bootstrapSchema(db)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	// sessions carry the cart and the logged-in identity; the cookie holds
	// only the opaque session id
	store := session.New(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
		c.Locals("session", sess)
		return c.Next()
	})

	mail := newMailer(cfg)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	userService := user.NewService(user.NewPostgresRepository(db), mail, []byte(cfg.SessionSecret), cfg.FrontendURL)
	userHandler := user.NewHandler(userService)

	cartService := cart.NewService(cart.NewStore(), productService)
	cartHandler := cart.NewHandler(cartService)

	shippingService := shipping.NewService(newShippingProvider(cfg))
	shippingHandler := shipping.NewHandler(shippingService, cartService)

	paymentService := payment.NewService(payment.NewStripeClient(cfg.StripeSecretKey))
	paymentHandler := payment.NewHandler(paymentService)

	orderService := order.NewService(order.NewPostgresRepository(db))
	orderHandler := order.NewHandler(orderService)

	checkoutService := checkout.NewService(cartService, shippingService, paymentService, orderService, mail)
	checkoutHandler := checkout.NewHandler(checkoutService)

	slideHandler := slide.NewHandler(slide.NewService(slide.NewPostgresRepository(db)))

	contactHandler := contact.NewHandler(mail, cfg.OrdersBCC)

	productHandler.RegisterPublicRoutes(app)
	userHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	shippingHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)
	slideHandler.RegisterPublicRoutes(app)
	contactHandler.RegisterPublicRoutes(app)

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/admin", user.RequireAdmin)
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	slideHandler.RegisterAdminRoutes(admin)

	log.Fatal(app.Listen(cfg.Addr))
}

// corsConfig allows credentialed requests for a concrete origin list. Fiber
// refuses AllowCredentials together with a wildcard origin, so a wildcard
// falls back to uncredentialed CORS.
func corsConfig(allowOrigins string) cors.Config {
	return cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: allowOrigins != "*",
	}
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func newMailer(cfg config.Config) mailer.Sender {
	if cfg.SMTPHost == "" {
		log.Println("SMTP_HOST not set, email will be logged instead of sent")
		return mailer.LogSender{}
	}
	return mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom, cfg.OrdersBCC)
}

func newShippingProvider(cfg config.Config) shipping.Provider {
	if cfg.ShippingAPIURL == "" {
		log.Println("SHIPPING_API_URL not set, using static rate table")
		return shipping.NewStaticProvider()
	}
	return shipping.NewHTTPProvider(cfg.ShippingAPIURL, cfg.ShippingAPIKey)
}

// bootstrapSchema creates the tables on first boot and seeds the stand's
// starting catalog and homepage slides when empty.
func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			street TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			zip TEXT NOT NULL DEFAULT '',
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			marketing_opt_in BOOLEAN NOT NULL DEFAULT FALSE,
			sms_alert_opt_in BOOLEAN NOT NULL DEFAULT FALSE,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			verification_code TEXT,
			created_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			local_pickup_only BOOLEAN NOT NULL DEFAULT FALSE,
			display_order INT NOT NULL DEFAULT 0,
			weight NUMERIC NOT NULL DEFAULT 0,
			length NUMERIC NOT NULL DEFAULT 0,
			width NUMERIC NOT NULL DEFAULT 0,
			height NUMERIC NOT NULL DEFAULT 0,
			is_archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			user_id INT,
			full_name TEXT NOT NULL DEFAULT '',
			street TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			zip TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			shipping_method TEXT NOT NULL DEFAULT '',
			shipping_cost NUMERIC NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL DEFAULT '',
			order_status TEXT NOT NULL DEFAULT 'Pending',
			tracking_number TEXT,
			created_at TEXT NOT NULL DEFAULT '',
			shipped_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(order_id),
			product_id INT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			quantity INT NOT NULL DEFAULT 0,
			price NUMERIC NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS slides (
			slide_id SERIAL PRIMARY KEY,
			url TEXT NOT NULL,
			alt TEXT NOT NULL DEFAULT '',
			display_order INT NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}

	seedProducts(db)
	seedSlides(db)
}

func seedProducts(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil || count > 0 {
		return
	}

	seed := []struct {
		name, desc, img, category string
		price                     float64
		stock                     int
		pickupOnly                bool
		weight                    float64
	}{
		{"Carolina reapers", "Fresh Carolina reaper peppers, by the half pint. Handle with gloves.", "/images/reapers.jpg", "Produce", 5.99, 10, false, 0.5},
		{"Fatali Salsa", "Small-batch fatali pepper salsa, 16 oz jar.", "/images/fatali-salsa.jpg", "Pantry", 9.99, 24, false, 1.4},
		{"Pesto", "Basil pesto made the same morning it's sold. Keep refrigerated.", "/images/pesto.jpg", "Pantry", 7.99, 12, true, 0.9},
	}
	for i, s := range seed {
		_, err := db.Exec(
			`INSERT INTO products (name, description, price, stock, image_url, category, local_pickup_only, display_order, weight)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			s.name, s.desc, s.price, s.stock, s.img, s.category, s.pickupOnly, i+1, s.weight,
		)
		if err != nil {
			fmt.Printf("warning: could not seed product %s: %v\n", s.name, err)
		}
	}
}

func seedSlides(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM slides`).Scan(&count); err != nil || count > 0 {
		return
	}

	seed := []struct{ url, alt string }{
		{"/images/farm-stand.jpg", "The farm stand on a summer morning"},
		{"/images/pepper-rows.jpg", "Rows of peppers in July"},
		{"/images/salsa-shelf.jpg", "This season's salsa on the shelf"},
	}
	for i, s := range seed {
		if _, err := db.Exec(`INSERT INTO slides (url, alt, display_order) VALUES ($1, $2, $3)`, s.url, s.alt, i+1); err != nil {
			fmt.Printf("warning: could not seed slide %s: %v\n", s.url, err)
		}
	}
}
