package suite

import "digital.vasic.expect/pkg/httpclient"

func httpRequest(url string) httpclient.Request {
	return httpclient.Request{URL: url}
}
