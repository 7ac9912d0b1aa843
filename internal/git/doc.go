// Package git provides the git operations up needs, via the git CLI.
//
// Template repositories are fetched with a shallow clone ([Clone]). For
// https URLs, credentials configured for the URL's host are injected into
// the clone URL ([AuthURL]); ssh and scp-style URLs rely on the user's
// SSH agent. Local directories are used as they are.
package git
