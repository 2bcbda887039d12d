// Package browser abstracts the two browser capabilities the workflow
// depends on: navigating away on auth failure and saving a binary artifact.
// Injecting them keeps the orchestrator free of environment side effects.
package browser

// Adapter is the capability surface the orchestrator is given.
type Adapter interface {
	// Redirect navigates the user to path. In the web client this is a
	// location change; in the CLI it is a prompt to sign in again.
	Redirect(path string)
	// SaveBinary persists data under filename and returns where it landed.
	SaveBinary(data []byte, filename string) (string, error)
}
