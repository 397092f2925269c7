// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/kindbridge/kindbridge/internal/app/features/auth"
	campaignsfeature "github.com/kindbridge/kindbridge/internal/app/features/campaigns"
	companiesfeature "github.com/kindbridge/kindbridge/internal/app/features/companies"
	donationsfeature "github.com/kindbridge/kindbridge/internal/app/features/donations"
	healthfeature "github.com/kindbridge/kindbridge/internal/app/features/health"
	ngosfeature "github.com/kindbridge/kindbridge/internal/app/features/ngos"
	reportsfeature "github.com/kindbridge/kindbridge/internal/app/features/reports"
	usersfeature "github.com/kindbridge/kindbridge/internal/app/features/users"
	"github.com/kindbridge/kindbridge/internal/app/store/audit"
	campaignstore "github.com/kindbridge/kindbridge/internal/app/store/campaigns"
	companystore "github.com/kindbridge/kindbridge/internal/app/store/companies"
	donationstore "github.com/kindbridge/kindbridge/internal/app/store/donations"
	ngostore "github.com/kindbridge/kindbridge/internal/app/store/ngos"
	userstore "github.com/kindbridge/kindbridge/internal/app/store/users"
	"github.com/kindbridge/kindbridge/internal/app/system/auditlog"
	sysauth "github.com/kindbridge/kindbridge/internal/app/system/auth"
	"github.com/kindbridge/kindbridge/internal/app/system/token"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. KindBridge builds the token
// manager and the auth gate, constructs the stores, and mounts the
// feature routers: health, auth, users, ngos, companies, campaigns,
// donations, and reports.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens, err := token.NewManager(appCfg.TokenSecret, appCfg.TokenTTL, appCfg.TokenRefreshWithin)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Stores.
	users := userstore.New(db)
	ngos := ngostore.New(db)
	companies := companystore.New(db)
	campaigns := campaignstore.New(db)
	donations := donationstore.New(db)
	events := audit.New(db)

	auditLog := auditlog.New(events, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	// The gate resolves token subjects to fresh account state on every
	// request, so role changes and deactivations apply immediately.
	gate := sysauth.New(tokens, userstore.NewFetcher(db), auditLog, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication.
	authHandler := authfeature.NewHandler(users, tokens, auditLog, logger)
	r.Mount("/auth", authfeature.Routes(authHandler, gate))

	// Admin user management.
	usersHandler := usersfeature.NewHandler(users, auditLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, gate))

	// NGO directory and verification.
	ngosHandler := ngosfeature.NewHandler(ngos, users, auditLog, logger)
	r.Mount("/ngos", ngosfeature.Routes(ngosHandler, gate))

	// Corporate donor profiles.
	companiesHandler := companiesfeature.NewHandler(companies, users, logger)
	r.Mount("/companies", companiesfeature.Routes(companiesHandler, gate))

	// Campaign catalog and lifecycle.
	campaignsHandler := campaignsfeature.NewHandler(campaigns, ngos, auditLog, logger)
	r.Mount("/campaigns", campaignsfeature.Routes(campaignsHandler, gate))

	// Giving and settlement.
	donationsHandler := donationsfeature.NewHandler(donations, campaigns, ngos, auditLog, logger)
	r.Mount("/donations", donationsfeature.Routes(donationsHandler, gate))

	// Admin reporting.
	reportsHandler := reportsfeature.NewHandler(users, ngos, campaigns, donations, events, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, gate))

	return r, nil
}
