// Command convert-firebase-creds reads a Firebase service account JSON
// file and prints it as a single compact line, suitable for the
// FIREBASE_CREDENTIALS_JSON environment variable.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <service-account.json>\n", os.Args[0])
		os.Exit(2)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	var creds map[string]interface{}
	if err := json.Unmarshal(raw, &creds); err != nil {
		fmt.Fprintf(os.Stderr, "invalid JSON: %v\n", err)
		os.Exit(1)
	}
	for _, field := range []string{"type", "project_id", "private_key", "client_email"} {
		if _, ok := creds[field]; !ok {
			fmt.Fprintf(os.Stderr, "missing required field %q, is this a service account file?\n", field)
			os.Exit(1)
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		fmt.Fprintf(os.Stderr, "compact JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(compact.String())
}
