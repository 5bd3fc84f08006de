package rest

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"lyro/internal/service"
	"lyro/internal/transport/rest/handler"
	"lyro/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	QuestionService *service.QuestionService
	NBTService      *service.NBTService
	SubjectService  *service.SubjectService
	SchoolService   *service.SchoolService
	VoucherService  *service.VoucherService
	Logger          *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	nbtHandler := handler.NewNBTHandler(c.NBTService)
	subjectHandler := handler.NewSubjectHandler(c.SubjectService)
	schoolHandler := handler.NewSchoolHandler(c.SchoolService)
	voucherHandler := handler.NewVoucherHandler(c.VoucherService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS and request logging (apply first)
	r.Use(corsMiddleware)
	r.Use(loggingMiddleware(c.Logger))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions/practice", questionHandler.Practice).Methods("GET", "OPTIONS")
	v1.HandleFunc("/subjects", subjectHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/subjects/{id}/topics", subjectHandler.Topics).Methods("GET", "OPTIONS")
	v1.HandleFunc("/schools", schoolHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/tests", nbtHandler.ListAvailable).Methods("GET", "OPTIONS")
	v1.HandleFunc("/tests/{id}", nbtHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/vouchers/redeem", voucherHandler.Redeem).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require admin auth)
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.RequireAdmin)

	admin.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	admin.HandleFunc("/questions/{id}", questionHandler.Get).Methods("GET", "OPTIONS")
	admin.HandleFunc("/questions/{id}", questionHandler.Update).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/questions/{id}", questionHandler.Delete).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/tests", nbtHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/tests", nbtHandler.List).Methods("GET", "OPTIONS")
	admin.HandleFunc("/tests/{id}", nbtHandler.Update).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/tests/{id}", nbtHandler.Delete).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/tests/{id}/questions", nbtHandler.AppendQuestion).Methods("POST", "OPTIONS")
	admin.HandleFunc("/tests/{id}/questions/{index}", nbtHandler.UpdateQuestion).Methods("PUT", "OPTIONS")
	admin.HandleFunc("/tests/{id}/questions/{index}", nbtHandler.RemoveQuestion).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/subjects", subjectHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/subjects/{id}", subjectHandler.Delete).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/topics", subjectHandler.CreateTopic).Methods("POST", "OPTIONS")
	admin.HandleFunc("/topics/{id}", subjectHandler.DeleteTopic).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/schools", schoolHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/schools/{id}", schoolHandler.Delete).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/vouchers", voucherHandler.Generate).Methods("POST", "OPTIONS")
	admin.HandleFunc("/vouchers", voucherHandler.List).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
