package provider

import (
	"fmt"
	"sync"

	"github.com/payfront/payfront/infra/config"
	"github.com/payfront/payfront/infra/logger"
)

// SecretKeyEnv names the environment variable carrying the upstream
// credential. The facade reads it lazily on first use.
const SecretKeyEnv = "STRIPE_SECRET_KEY"

// BuildFunc constructs the upstream gateway from a credential.
type BuildFunc func(secretKey string) (Gateway, error)

// Facade lazily constructs the upstream gateway exactly once per process,
// gated on configuration availability. Construction is serialized by a
// mutex, so concurrent first calls observe a single client; a failed
// configuration check does not latch and is re-evaluated on the next call.
type Facade struct {
	mu    sync.Mutex
	gw    Gateway
	build BuildFunc
}

// NewFacade creates a facade around the given builder.
func NewFacade(build BuildFunc) *Facade {
	return &Facade{build: build}
}

// Gateway returns the process-lifetime gateway singleton, constructing it on
// first use. Without the credential it fails with a configuration error
// naming the missing setting.
func (f *Facade) Gateway() (Gateway, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gw != nil {
		return f.gw, nil
	}

	secretKey := config.GetEnv(SecretKeyEnv, "")
	if secretKey == "" {
		return nil, WrapError(KindConfiguration,
			fmt.Sprintf("%s is not set; supply it via the environment or a .env file", SecretKeyEnv),
			ErrNotConfigured)
	}

	gw, err := f.build(secretKey)
	if err != nil {
		return nil, WrapError(KindConfiguration, "failed to construct provider client: "+err.Error(), err)
	}

	logger.Info("provider client constructed", logger.Context{Component: "provider"})
	f.gw = gw
	return f.gw, nil
}

// Configured reports whether the credential is present, without constructing
// the client.
func Configured() bool {
	return config.GetEnv(SecretKeyEnv, "") != ""
}
