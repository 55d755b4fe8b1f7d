package main

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

const maxFormMemory = 32 << 20

const busyMessage = "Another change is still being saved. Try again in a moment."

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}

func decodeForm(dst any, values url.Values) error {
	return formDecoder.Decode(dst, values)
}

// parseAction splits a button value like "remove-item:2" into its name
// and index. The index is -1 when absent or malformed.
func parseAction(v string) (name string, index int) {
	name, rest, found := strings.Cut(v, ":")
	if !found {
		return name, -1
	}
	i, err := strconv.Atoi(rest)
	if err != nil {
		return name, -1
	}
	return name, i
}

func confirmed(r *http.Request) bool {
	return r.PostFormValue("confirm") == "yes"
}

// confirmData feeds the confirm page.
type confirmData struct {
	Prompt string
	Action string
	Hidden map[string]string
	Button string
	Cancel string
}
