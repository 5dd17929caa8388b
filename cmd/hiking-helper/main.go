package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/doog8889-droid/hiking-helper/internal/db"
	"github.com/doog8889-droid/hiking-helper/internal/forecast"
	"github.com/doog8889-droid/hiking-helper/internal/geocode"
	"github.com/doog8889-droid/hiking-helper/internal/handlers"
)

func main() {
	// Load .env if present; real environment wins
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Open the peak gazetteer; the app works without it, autocomplete
	// simply stays empty
	database, err := db.NewDB()
	if err != nil {
		log.Printf("Warning: Gazetteer database unavailable: %v", err)
		log.Println("Continuing without peak autocomplete...")
		database = nil
	} else {
		defer database.Close()
		log.Println("Gazetteer database connected")
	}

	userAgent := os.Getenv("FORECAST_USER_AGENT")
	if userAgent == "" {
		userAgent = "hiking-helper/1.0 (hiking-helper@example.com)"
	}

	resolver := geocode.NewResolver(geocode.NewClient())
	forecaster := forecast.NewService(forecast.NewClient(userAgent))

	// Setup routes
	h := handlers.New(database, resolver, forecaster)
	router := httprouter.New()
	router.GET("/", h.HandleIndex)
	router.GET("/health", h.HandleHealth)
	router.GET("/api/search", h.HandleSearch)
	router.GET("/api/suggest", h.HandleSuggest)
	router.POST("/api/plan", h.HandlePlan)
	router.GET("/api/plan.ics", h.HandlePlanICS)
	router.GET("/api/plan.qr", h.HandlePlanQR)

	handler := cors.Default().Handler(router)

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on http://localhost%s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
