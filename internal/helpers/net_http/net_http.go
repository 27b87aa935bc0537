package net_http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Заголовок с общим секретом для аутентификации служебных запросов.
const SecretHeader = "X-Digest-Secret"

type HttpClient[T any] struct {
	HttpClient http.Client
}

func New[T any]() *HttpClient[T] {
	var netClient = http.Client{
		Timeout: time.Second * 5,
	}
	clt := &HttpClient[T]{
		HttpClient: netClient,
	}
	return clt
}

// Отправка структуры в виде JSON POST-запросом по указанному URL
// с заголовком общего секрета. Таймаут запроса ограничен.
func (clt *HttpClient[T]) PostJsonToURL(ctx context.Context, url string, secret string, payload *T) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(SecretHeader, secret)

	res, err := clt.HttpClient.Do(request)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("post %s: unexpected status %d", url, res.StatusCode)
	}
	return nil
}
