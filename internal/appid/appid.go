package appid

import (
	"context"

	"github.com/fulmenhq/gofulmen/appidentity"

	appidentityassets "github.com/callpace/callpace/internal/assets/appidentity"
)

func init() {
	// Best-effort registration. Explicit identity overrides remain
	// authoritative (FULMEN_APP_IDENTITY_PATH); the embedded identity covers
	// standalone-binary use when no external `.fulmen/app.yaml` is found.
	_ = appidentity.RegisterEmbeddedIdentityYAML(appidentityassets.YAML)
}

func Get(ctx context.Context) (*appidentity.Identity, error) {
	return appidentity.Get(ctx)
}
