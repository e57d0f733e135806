package application

import (
	"fmt"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

type RouteParams struct {
	Stop      []string
	MaxTokens int
	Size      string
	Count     int
}

// Route is everything the kernel needs to call a model.
type Route struct {
	Model       domain.ModelID
	DisplayName string
	Capability  domain.Capability
	Provider    domain.ProviderKind
	Params      RouteParams
}

var togetherChatParams = RouteParams{
	Stop:      []string{"</s>", "[INST]"},
	MaxTokens: 1024,
}

// routes is the only place models are registered.
var routes = map[domain.ModelID]Route{
	domain.ModelGPT35: {
		DisplayName: "ChatGPT gpt-3.5-turbo",
		Capability:  domain.CapabilityChat,
		Provider:    domain.ProviderOpenAI,
	},
	domain.ModelGPT4: {
		DisplayName: "ChatGPT gpt-4",
		Capability:  domain.CapabilityChat,
		Provider:    domain.ProviderOpenAI,
	},
	domain.ModelMixtral: {
		DisplayName: "Mixtral 8x7B Instruct",
		Capability:  domain.CapabilityChat,
		Provider:    domain.ProviderTogether,
		Params:      togetherChatParams,
	},
	domain.ModelLlama2: {
		DisplayName: "Llama 2 70B Chat",
		Capability:  domain.CapabilityChat,
		Provider:    domain.ProviderTogether,
		Params:      togetherChatParams,
	},
	domain.ModelCodeLlama: {
		DisplayName: "Code Llama 34B Instruct",
		Capability:  domain.CapabilityChat,
		Provider:    domain.ProviderTogether,
		Params:      togetherChatParams,
	},
	domain.ModelDallE3: {
		DisplayName: "DALL-E 3",
		Capability:  domain.CapabilityImage,
		Provider:    domain.ProviderOpenAI,
		Params:      RouteParams{Size: "1024x1024", Count: 1},
	},
	domain.ModelSDXL: {
		DisplayName: "SDXL",
		Capability:  domain.CapabilityImage,
		Provider:    domain.ProviderReplicate,
		Params:      RouteParams{Size: "1024x1024", Count: 1},
	},
}

// Providers holds one client per provider and capability. A missing entry
// means the provider has no key configured.
type Providers struct {
	Chat  map[domain.ProviderKind]ports.ChatProvider
	Image map[domain.ProviderKind]ports.ImageProvider
}

type Dispatcher struct {
	providers Providers
}

func NewDispatcher(providers Providers) *Dispatcher {
	return &Dispatcher{providers: providers}
}

func (d *Dispatcher) Resolve(model domain.ModelID) (Route, error) {
	route, ok := routes[model]
	if !ok {
		return Route{}, fmt.Errorf("resolve model %q: %w", model, domain.ErrUnsupportedModel)
	}
	route.Model = model
	return route, nil
}

func (d *Dispatcher) ChatClient(route Route) (ports.ChatProvider, error) {
	if route.Capability != domain.CapabilityChat {
		return nil, fmt.Errorf("model %q does not chat: %w", route.Model, domain.ErrUnsupportedModel)
	}

	client, ok := d.providers.Chat[route.Provider]
	if !ok || client == nil {
		return nil, fmt.Errorf("%s chat client: %w", route.Provider, domain.ErrCredentialMissing)
	}
	return client, nil
}

func (d *Dispatcher) ImageClient(route Route) (ports.ImageProvider, error) {
	if route.Capability != domain.CapabilityImage {
		return nil, fmt.Errorf("model %q does not generate images: %w", route.Model, domain.ErrUnsupportedModel)
	}

	client, ok := d.providers.Image[route.Provider]
	if !ok || client == nil {
		return nil, fmt.Errorf("%s image client: %w", route.Provider, domain.ErrCredentialMissing)
	}
	return client, nil
}

// Models lists the registered model ids.
func Models() []domain.ModelID {
	ids := make([]domain.ModelID, 0, len(modelAliases))
	for _, alias := range modelAliases {
		ids = append(ids, alias.model)
	}
	return ids
}
