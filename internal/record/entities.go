package record

// AdditionalField is a custom attribute discovered across the batch.
// Value is always a list, even when the report held a scalar.
type AdditionalField struct {
	Key   string   `json:"key"`
	Value []string `json:"value"`
}

// SocialNetwork is a profile link derived from a "<network>Url" mapping key.
type SocialNetwork struct {
	Name        string `json:"name"`
	ProfileName string `json:"profileName"`
	ProfileURL  string `json:"profileUrl"`
}

// Member is one membership entry of a team. Email is copied verbatim from
// the report, so it may be null.
type Member struct {
	Email any `json:"email"`
}
