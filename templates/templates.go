// Package templates wraps the inbound template generator and the Reality
// key helpers.
package templates

// Template describes one preset the backend can render into an inbound.
type Template struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Protocol    string `json:"protocol"`
	Template    string `json:"template"`
	Difficulty  string `json:"difficulty"`
	Performance string `json:"performance"`
	Security    string `json:"security"`
}

// GenerateParams are the template inputs. An empty Tag lets the backend pick one.
type GenerateParams struct {
	Domain       string         `json:"domain,omitempty"`
	Port         int            `json:"port"`
	Tag          string         `json:"tag,omitempty"`
	CustomParams map[string]any `json:"custom_params,omitempty"`
}

type generateRequest struct {
	TemplateID string `json:"template_id"`
	GenerateParams
}

type GenerateResult struct {
	Success    bool           `json:"success"`
	TemplateID string         `json:"template_id"`
	Config     map[string]any `json:"config"`
	Message    string         `json:"message"`
}

type RealityKeys struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
	Message    string `json:"message"`
}

type ShortIDs struct {
	ShortIDs []string `json:"short_ids"`
	Count    int      `json:"count"`
}
