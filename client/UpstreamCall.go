// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/metrics"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

// retryableError marks a transient upstream failure: transport error, 5xx or 429 response
type retryableError struct {
	err error
}

func (r *retryableError) Error() string {
	return r.err.Error()
}

func (r *retryableError) Unwrap() error {
	return r.err
}

// badResponseError marks an upstream answer that retrying cannot fix: 4xx status or malformed body
type badResponseError struct {
	err error
}

func (b *badResponseError) Error() string {
	return b.err.Error()
}

func (b *badResponseError) Unwrap() error {
	return b.err
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return &retryableError{err: err}
	}
	status := resp.StatusCode()
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		return &retryableError{err: fmt.Errorf("response status %v", status)}
	}
	if status != http.StatusOK {
		return &badResponseError{err: fmt.Errorf("unexpected response status %v: %s", status, string(resp.Body()))}
	}
	return nil
}

func decodeResponse(resp *resty.Response, v interface{}) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return &badResponseError{err: err}
	}
	return nil
}

func newBackOff(maxRetries int, ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = 200 * time.Millisecond
	exponential.MaxInterval = 2 * time.Second
	exponential.MaxElapsedTime = 10 * time.Second
	if maxRetries < 0 {
		maxRetries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(maxRetries)), ctx)
}

// callWithRetry retries transient failures with bounded exponential backoff.
// Bad responses are reported as UpstreamBadResponse, any other failure as UpstreamUnavailable.
func callWithRetry(ctx context.Context, service string, method string, maxRetries int, call func() error) error {
	start := time.Now()
	var permanentErr error
	err := backoff.RetryNotify(func() error {
		callErr := call()
		if callErr == nil {
			return nil
		}
		var retryable *retryableError
		if errors.As(callErr, &retryable) {
			return callErr
		}
		permanentErr = callErr
		return nil
	}, newBackOff(maxRetries, ctx), func(err error, next time.Duration) {
		log.Warnf("[%s] %s failed, retrying in %v: %v", service, method, next, err)
	})
	if err == nil {
		err = permanentErr
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.UpstreamCallDuration.WithLabelValues(service, method, result).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Errorf("[%s] %s failed: %v", service, method, err)
		var badResponse *badResponseError
		if errors.As(err, &badResponse) {
			return upstreamBadResponse(service, err)
		}
		return upstreamUnavailable(service, err)
	}
	return nil
}

func upstreamUnavailable(service string, err error) *exception.CustomError {
	return &exception.CustomError{
		Status:  http.StatusServiceUnavailable,
		Code:    exception.UpstreamUnavailable,
		Message: exception.UpstreamUnavailableMsg,
		Params:  map[string]interface{}{"service": service},
		Debug:   err.Error(),
	}
}

func upstreamBadResponse(service string, err error) *exception.CustomError {
	return &exception.CustomError{
		Status:  http.StatusBadGateway,
		Code:    exception.UpstreamBadResponse,
		Message: exception.UpstreamBadResponseMsg,
		Params:  map[string]interface{}{"service": service},
		Debug:   err.Error(),
	}
}
