package hub

import "errors"

var (
	// ErrPortChangeForbidden indicates the port can't change once initialized.
	ErrPortChangeForbidden = errors.New("port change forbidden after initialization")
	// ErrPortUndefined indicates no port has been configured.
	ErrPortUndefined = errors.New("port undefined")
	// ErrNotInitialized indicates the hub must be initialized first.
	ErrNotInitialized = errors.New("hub not initialized")
	// ErrInitializing indicates another Initialize is in progress.
	ErrInitializing = errors.New("hub initialization in progress")
)
