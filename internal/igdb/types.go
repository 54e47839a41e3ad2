package igdb

// Remote projections of IGDB records. These are fetched, normalized
// into local rows, and discarded; they are never persisted as-is.
// Reference ids use zero to mean "not set" (IGDB ids start at 1).

// RemotePlatform is an IGDB platform record.
type RemotePlatform struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Generation   int    `json:"generation,omitempty"`
	FamilyID     int    `json:"platform_family,omitempty"`
	TypeID       int    `json:"platform_type,omitempty"`
	LogoID       int    `json:"platform_logo,omitempty"`
}

// RemoteFamily is an IGDB platform family record (e.g. "PlayStation").
type RemoteFamily struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RemoteType is an IGDB platform type record (console, arcade, computer).
type RemoteType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RemoteLogo is an IGDB platform logo record.
type RemoteLogo struct {
	ID      int    `json:"id"`
	ImageID string `json:"image_id,omitempty"`
	URL     string `json:"url,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// RemoteGame is an IGDB game record, trimmed to the fields the tracker
// uses.
type RemoteGame struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Summary      string  `json:"summary,omitempty"`
	FirstRelease int64   `json:"first_release_date,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
}

// Genre is an IGDB genre record, used as read-only reference data.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
