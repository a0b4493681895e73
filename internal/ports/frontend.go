package ports

// Frontend drives an interactive session with the user.
type Frontend interface {
	// Start runs the frontend until the user quits or input ends.
	Start() error

	// Stop shuts the frontend down.
	Stop() error
}
