// Package constants defines configuration values shared across layers.
package constants

// Pub/Sub providers.
const (
	PubSubProviderNoop   = "noop"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Identity providers.
const (
	IdentityProviderLocal    = "local"
	IdentityProviderFirebase = "firebase"
)

// Upload subfolders.
const (
	UploadSubfolderDefault       = "general"
	UploadSubfolderProfilePhotos = "profile-photos"
	UploadSubfolderGalleryPhotos = "gallery-photos"
	UploadSubfolderDesign        = "design"
	UploadSubfolderProducts      = "products"
)

// Environments.
const (
	EnvLocal = "local"
)
