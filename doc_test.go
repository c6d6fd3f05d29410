package webapi

import (
	"context"
	"fmt"
	"net/http"
)

type echoTransport struct{}

func (echoTransport) Send(ctx context.Context, method, uri string, header http.Header, body string) (*TransportResponse, error) {
	return &TransportResponse{
		StatusCode: 200,
		Status:     "200 OK",
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(fmt.Sprintf(`{"method":%q,"uri":%q}`, method, uri)),
		Success:    true,
	}, nil
}

func ExampleClient_Call() {
	client := New("https://api.example.com/v1", Commands{
		"get_user": {Method: "GET", Path: "user/:id"},
	}, WithTransport(echoTransport{}))

	resp, err := client.Call(context.Background(), "get_user", map[string]any{"id": "42"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	content := resp.Content.(map[string]any)
	fmt.Println(content["method"], content["uri"])
	// Output: GET https://api.example.com/v1/user/42
}
