package domain

type ModelID string

type ProviderKind string

const (
	ProviderOpenAI    ProviderKind = "openai"
	ProviderTogether  ProviderKind = "together"
	ProviderReplicate ProviderKind = "replicate"
)

const (
	ModelGPT35     ModelID = "gpt-3.5-turbo"
	ModelGPT4      ModelID = "gpt-4"
	ModelMixtral   ModelID = "mistralai/Mixtral-8x7B-Instruct-v0.1"
	ModelLlama2    ModelID = "togethercomputer/llama-2-70b-chat"
	ModelCodeLlama ModelID = "togethercomputer/CodeLlama-34b-Instruct"
	ModelDallE3    ModelID = "dall-e-3"
	ModelSDXL      ModelID = "stability-ai/sdxl:39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"
)

const DefaultModel = ModelGPT4

// ModelSelection holds the sticky model choice and at most one transient
// override layered on top of it.
type ModelSelection struct {
	sticky   ModelID
	override ModelID
}

func NewModelSelection(sticky ModelID) *ModelSelection {
	if sticky == "" {
		sticky = DefaultModel
	}
	return &ModelSelection{sticky: sticky}
}

func (s *ModelSelection) Sticky() ModelID {
	return s.sticky
}

func (s *ModelSelection) Current() ModelID {
	if s.override != "" {
		return s.override
	}
	return s.sticky
}

// Override makes id current until the returned restore func runs. Callers
// must defer restore so the previous selection comes back on every path.
func (s *ModelSelection) Override(id ModelID) (restore func()) {
	previous := s.override
	s.override = id
	return func() {
		s.override = previous
	}
}
