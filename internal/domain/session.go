package domain

// Session is the authenticated identity established once when the kernel
// starts. The token is held for the kernel's lifetime and never refreshed.
type Session struct {
	UserID       string
	Name         string
	Email        string
	Token        string
	RefreshToken string
	Keys         ProviderKeys
}

type ProviderKeys struct {
	OpenAI    string
	Together  string
	Replicate string
}

// Credentials is what the auth-exchange endpoint hands back for an API key.
type Credentials struct {
	UserID   string
	Name     string
	Email    string
	Password string
	Keys     ProviderKeys
}

type SignInResult struct {
	UserID       string
	IDToken      string
	RefreshToken string
}
