package opgg

import "time"

const (
	defaultBaseURL     = "https://na.op.gg"
	defaultHTTPTimeout = 15 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/50.0.2661.102 Safari/537.36"
	errorBodyLimit     = 512

	// Past-season badges are <li class="Item tip" title="Gold 1 10LP">.
	seasonTag  = "li"
	seasonAttr = "title"
)

var seasonClasses = []string{"Item", "tip"}
