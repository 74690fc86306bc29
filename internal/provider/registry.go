package provider

// ModelInfo describes one registered model for discovery.
type ModelInfo struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	Available   bool   `json:"available"`
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
}

// Resolved is a registry lookup result: the client plus the provider-side
// model name the client expects.
type Resolved struct {
	Info   ModelInfo
	Client Client
	Model  string
}

// Registry maps model ids to clients. It is populated once at startup and
// passed into the dispatcher; there is no ambient global registry.
type Registry struct {
	order   []string
	entries map[string]Resolved
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Resolved)}
}

// Register adds a model. The client may be nil when the model is registered
// as unavailable (e.g. missing credentials); the dispatcher never invokes
// unavailable models.
func (r *Registry) Register(info ModelInfo, client Client, model string) {
	if _, exists := r.entries[info.ID]; !exists {
		r.order = append(r.order, info.ID)
	}
	r.entries[info.ID] = Resolved{Info: info, Client: client, Model: model}
}

// Resolve looks up a model id.
func (r *Registry) Resolve(id string) (Resolved, bool) {
	entry, ok := r.entries[id]
	return entry, ok
}

// List returns every registered model in registration order.
func (r *Registry) List() []ModelInfo {
	infos := make([]ModelInfo, 0, len(r.order))
	for _, id := range r.order {
		infos = append(infos, r.entries[id].Info)
	}
	return infos
}
