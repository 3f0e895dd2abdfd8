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
	"fmt"
	"time"

	"github.com/fedora-infra/bodhi-service/view"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const BuildSystemServiceName = "build system"

type TaggedQuery struct {
	Tag         string
	PackageName string
	Latest      bool
}

type BuildSystemClient interface {
	GetBuild(ctx context.Context, nvr string) (*view.BuildInfo, error)
	// GetBuilds resolves all builds with one multicall, missing builds are mapped to nil
	GetBuilds(ctx context.Context, nvrs []string) (map[string]*view.BuildInfo, error)
	ListTags(ctx context.Context, nvrs []string) (map[string][]string, error)
	ListTagged(ctx context.Context, query TaggedQuery) ([]view.BuildInfo, error)
	ListTaggedMulti(ctx context.Context, queries []TaggedQuery) ([][]view.BuildInfo, error)
	ListPackages(ctx context.Context) ([]view.BuildSystemPackage, error)
}

func NewBuildSystemClient(baseUrl string, timeout time.Duration, rateLimit int, maxRetries int) BuildSystemClient {
	if rateLimit <= 0 {
		rateLimit = 50
	}
	return &buildSystemClientImpl{
		client: resty.New().
			SetBaseURL(baseUrl).
			SetHeader("accept", "application/json"),
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1), // x requests per second
		timeout:     timeout,
		maxRetries:  maxRetries,
	}
}

type buildSystemClientImpl struct {
	client      *resty.Client
	rateLimiter *rate.Limiter
	timeout     time.Duration
	maxRetries  int
}

type rpcCall struct {
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

type rpcFault struct {
	Code   int    `json:"faultCode"`
	String string `json:"faultString"`
}

type rpcResult struct {
	Result json.RawMessage `json:"result"`
	Fault  *rpcFault       `json:"fault"`
}

type multicallRequest struct {
	Calls []rpcCall `json:"calls"`
}

type multicallResponse struct {
	Results []rpcResult `json:"results"`
}

func (b buildSystemClientImpl) call(ctx context.Context, call rpcCall) (json.RawMessage, error) {
	var response rpcResult
	err := callWithRetry(ctx, BuildSystemServiceName, call.Method, b.maxRetries, func() error {
		if err := b.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		callCtx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		resp, err := b.client.R().
			SetContext(callCtx).
			SetBody(call).
			Post("/call")
		if err = checkResponse(resp, err); err != nil {
			return err
		}
		return decodeResponse(resp, &response)
	})
	if err != nil {
		return nil, err
	}
	if response.Fault != nil {
		return nil, upstreamBadResponse(BuildSystemServiceName, fmt.Errorf("%s fault %d: %s", call.Method, response.Fault.Code, response.Fault.String))
	}
	return response.Result, nil
}

func (b buildSystemClientImpl) multicall(ctx context.Context, method string, calls []rpcCall) ([]json.RawMessage, error) {
	if len(calls) == 0 {
		return []json.RawMessage{}, nil
	}
	var response multicallResponse
	err := callWithRetry(ctx, BuildSystemServiceName, "multicall."+method, b.maxRetries, func() error {
		if err := b.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		callCtx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		resp, err := b.client.R().
			SetContext(callCtx).
			SetBody(multicallRequest{Calls: calls}).
			Post("/multicall")
		if err = checkResponse(resp, err); err != nil {
			return err
		}
		return decodeResponse(resp, &response)
	})
	if err != nil {
		return nil, err
	}
	if len(response.Results) != len(calls) {
		return nil, upstreamBadResponse(BuildSystemServiceName, fmt.Errorf("multicall %s returned %d results for %d calls", method, len(response.Results), len(calls)))
	}
	result := make([]json.RawMessage, 0, len(calls))
	for i, r := range response.Results {
		if r.Fault != nil {
			return nil, upstreamBadResponse(BuildSystemServiceName, fmt.Errorf("%s(%v) fault %d: %s", method, calls[i].Params, r.Fault.Code, r.Fault.String))
		}
		result = append(result, r.Result)
	}
	return result, nil
}

func isNullResult(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func (b buildSystemClientImpl) GetBuild(ctx context.Context, nvr string) (*view.BuildInfo, error) {
	raw, err := b.call(ctx, rpcCall{Method: "getBuild", Params: map[string]interface{}{"buildInfo": nvr}})
	if err != nil {
		return nil, err
	}
	if isNullResult(raw) {
		return nil, nil
	}
	var build view.BuildInfo
	if err = json.Unmarshal(raw, &build); err != nil {
		return nil, upstreamBadResponse(BuildSystemServiceName, err)
	}
	return &build, nil
}

func (b buildSystemClientImpl) GetBuilds(ctx context.Context, nvrs []string) (map[string]*view.BuildInfo, error) {
	calls := make([]rpcCall, 0, len(nvrs))
	for _, nvr := range nvrs {
		calls = append(calls, rpcCall{Method: "getBuild", Params: map[string]interface{}{"buildInfo": nvr}})
	}
	results, err := b.multicall(ctx, "getBuild", calls)
	if err != nil {
		return nil, err
	}
	builds := make(map[string]*view.BuildInfo, len(nvrs))
	for i, raw := range results {
		if isNullResult(raw) {
			builds[nvrs[i]] = nil
			continue
		}
		var build view.BuildInfo
		if err = json.Unmarshal(raw, &build); err != nil {
			return nil, upstreamBadResponse(BuildSystemServiceName, err)
		}
		builds[nvrs[i]] = &build
	}
	return builds, nil
}

func (b buildSystemClientImpl) ListTags(ctx context.Context, nvrs []string) (map[string][]string, error) {
	calls := make([]rpcCall, 0, len(nvrs))
	for _, nvr := range nvrs {
		calls = append(calls, rpcCall{Method: "listTags", Params: map[string]interface{}{"build": nvr}})
	}
	results, err := b.multicall(ctx, "listTags", calls)
	if err != nil {
		return nil, err
	}
	tags := make(map[string][]string, len(nvrs))
	for i, raw := range results {
		var buildTags []view.BuildTag
		if !isNullResult(raw) {
			if err = json.Unmarshal(raw, &buildTags); err != nil {
				return nil, upstreamBadResponse(BuildSystemServiceName, err)
			}
		}
		names := make([]string, 0, len(buildTags))
		for _, tag := range buildTags {
			names = append(names, tag.Name)
		}
		tags[nvrs[i]] = names
	}
	return tags, nil
}

func makeListTaggedCall(query TaggedQuery) rpcCall {
	params := map[string]interface{}{"tag": query.Tag, "latest": query.Latest}
	if query.PackageName != "" {
		params["package"] = query.PackageName
	}
	return rpcCall{Method: "listTagged", Params: params}
}

func (b buildSystemClientImpl) ListTagged(ctx context.Context, query TaggedQuery) ([]view.BuildInfo, error) {
	raw, err := b.call(ctx, makeListTaggedCall(query))
	if err != nil {
		return nil, err
	}
	builds := make([]view.BuildInfo, 0)
	if !isNullResult(raw) {
		if err = json.Unmarshal(raw, &builds); err != nil {
			return nil, upstreamBadResponse(BuildSystemServiceName, err)
		}
	}
	return builds, nil
}

func (b buildSystemClientImpl) ListTaggedMulti(ctx context.Context, queries []TaggedQuery) ([][]view.BuildInfo, error) {
	calls := make([]rpcCall, 0, len(queries))
	for _, query := range queries {
		calls = append(calls, makeListTaggedCall(query))
	}
	results, err := b.multicall(ctx, "listTagged", calls)
	if err != nil {
		return nil, err
	}
	tagged := make([][]view.BuildInfo, 0, len(results))
	for _, raw := range results {
		builds := make([]view.BuildInfo, 0)
		if !isNullResult(raw) {
			if err = json.Unmarshal(raw, &builds); err != nil {
				return nil, upstreamBadResponse(BuildSystemServiceName, err)
			}
		}
		tagged = append(tagged, builds)
	}
	return tagged, nil
}

func (b buildSystemClientImpl) ListPackages(ctx context.Context) ([]view.BuildSystemPackage, error) {
	raw, err := b.call(ctx, rpcCall{Method: "listPackages", Params: map[string]interface{}{}})
	if err != nil {
		return nil, err
	}
	packages := make([]view.BuildSystemPackage, 0)
	if !isNullResult(raw) {
		if err = json.Unmarshal(raw, &packages); err != nil {
			return nil, upstreamBadResponse(BuildSystemServiceName, err)
		}
	}
	return packages, nil
}
