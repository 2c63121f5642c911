// Package cursor answers "what is under the cursor" over a frozen
// ide.IDEInfo. Positions follow LSP: 0-based lines and UTF-16 characters.
package cursor
