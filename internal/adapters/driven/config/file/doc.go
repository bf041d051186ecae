// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.tarika.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable LLM prompts with embedded defaults
package file
