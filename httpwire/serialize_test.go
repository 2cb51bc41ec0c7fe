package httpwire

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeSmallBodyIsLiteral(t *testing.T) {
	resp := NewResponse(StatusOK, "HTTP/1.1")
	resp.Body = []byte("<p>hi</p>")
	resp.Headers[RespHeaderContentLength] = strconv.Itoa(len(resp.Body))
	resp.Headers[RespHeaderContentType] = "text/html"

	out := string(Serialize(resp))
	require.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n"))
	require.Contains(t, out, "Content-Length: 9\r\n")
	require.NotContains(t, out, "Transfer-Encoding")
	require.True(t, strings.HasSuffix(out, "<p>hi</p>\r\n"))
}

func TestSerializeChunksOverThreshold(t *testing.T) {
	body := strings.Repeat("x", 2048)
	resp := NewResponse(StatusOK, "HTTP/1.1")
	resp.Body = []byte(body)
	resp.Headers[RespHeaderContentLength] = strconv.Itoa(len(body))

	out := string(Serialize(resp))
	require.Contains(t, out, "Transfer-Encoding: chunked\r\n")
	require.NotContains(t, out, "Content-Length")
	require.Contains(t, out, "400\r\n") // 1024 in hex, twice
	require.True(t, strings.Contains(out, "\r\n0\r\n\r\n"))
}

func TestSerializeAbsentContentLengthChunks(t *testing.T) {
	resp := NewResponse(StatusOK, "HTTP/1.1")
	resp.Body = []byte("short")
	out := string(Serialize(resp))
	require.Contains(t, out, "Transfer-Encoding: chunked")
}

func TestSerializeAtExactThresholdIsLiteral(t *testing.T) {
	body := strings.Repeat("y", ChunkThreshold)
	resp := NewResponse(StatusOK, "HTTP/1.1")
	resp.Body = []byte(body)
	resp.Headers[RespHeaderContentLength] = strconv.Itoa(len(body))
	out := string(Serialize(resp))
	require.NotContains(t, out, "Transfer-Encoding")
	require.Contains(t, out, "Content-Length: 1024")
}

func TestIncrementalResponseLifecycle(t *testing.T) {
	resp := NewResponse(StatusOK, "HTTP/1.1")
	resp.Headers[RespHeaderContentLength] = "0"
	ir := NewIncrementalResponse(resp)
	require.Equal(t, ResponsePending, ir.Kind)

	ir = ir.Serialize()
	require.Equal(t, ResponseSerialized, ir.Kind)
	require.NotEmpty(t, ir.Remaining)

	for ir.Kind == ResponseSerialized {
		n := len(ir.Remaining)
		if n > 7 {
			n = 7
		}
		ir = ir.Advance(n)
	}
	require.Equal(t, ResponseDone, ir.Kind)
}

func TestParseHeaderBlockRoundTrip(t *testing.T) {
	headers, err := ParseHeaderBlock([]byte("Content-Type: text/plain\r\nX-Foo: bar"))
	require.NoError(t, err)
	require.Equal(t, "text/plain", headers["Content-Type"])
	require.Equal(t, "bar", headers["X-Foo"])
}
