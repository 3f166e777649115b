package entity

type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FindAgent returns the agent with the given id, or nil when the list does not contain it.
func FindAgent(agents []Agent, id string) *Agent {
	for i := range agents {
		if agents[i].ID == id {
			return &agents[i]
		}
	}
	return nil
}
