package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/pbin/internal/services"
	"github.com/desertthunder/pbin/internal/shared"
	"github.com/urfave/cli/v3"
)

// apiService returns a client for --url, or the configured server origin.
func (r *Runner) apiService(cmd *cli.Command) *services.APIService {
	baseURL := cmd.String("url")
	if baseURL == "" {
		baseURL = r.origin()
	}
	return services.NewAPIService(baseURL, r.httpClient)
}

// APIGet makes a direct GET request to a running server.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	return r.apiRequest(ctx, cmd, http.MethodGet)
}

// APIPost makes a direct POST request with a JSON body.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	return r.apiRequest(ctx, cmd, http.MethodPost)
}

// APIPut makes a direct PUT request with a JSON body.
func (r *Runner) APIPut(ctx context.Context, cmd *cli.Command) error {
	return r.apiRequest(ctx, cmd, http.MethodPut)
}

// APIDelete makes a direct DELETE request.
func (r *Runner) APIDelete(ctx context.Context, cmd *cli.Command) error {
	return r.apiRequest(ctx, cmd, http.MethodDelete)
}

// APIHealth checks that a server is reachable and healthy.
func (r *Runner) APIHealth(ctx context.Context, cmd *cli.Command) error {
	api := r.apiService(cmd)
	if err := api.Health(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ %s is healthy\n", api.BaseURL())
}

func (r *Runner) apiRequest(ctx context.Context, cmd *cli.Command, method string) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: request path", shared.ErrMissingArgument)
	}

	var data []byte
	if method == http.MethodPost || method == http.MethodPut {
		raw := cmd.String("data")
		if raw == "" {
			return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
		}

		var jsonTest any
		if err := json.Unmarshal([]byte(raw), &jsonTest); err != nil {
			return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
		}
		data = []byte(raw)
	}

	api := r.apiService(cmd)
	r.logger.Info("API request", "method", method, "url", api.BaseURL()+path)

	var (
		resp *services.APIResponse
		err  error
	)
	switch method {
	case http.MethodPost:
		resp, err = api.Post(ctx, path, data)
	case http.MethodPut:
		resp, err = api.Put(ctx, path, data)
	case http.MethodDelete:
		resp, err = api.Delete(ctx, path)
	default:
		resp, err = api.Get(ctx, path)
	}
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !cmd.Bool("compact"))
	}
	if len(resp.Body) == 0 {
		return r.writePlain("✓ %d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
