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
	"time"

	"github.com/go-resty/resty/v2"
)

const PackageOwnershipServiceName = "package ownership"

type PackageOwnershipClient interface {
	// GetAuthorizedPackages answers for every package whether user has commit rights, in one request
	GetAuthorizedPackages(ctx context.Context, user string, packages []string) (map[string]bool, error)
}

func NewPackageOwnershipClient(baseUrl string, timeout time.Duration, maxRetries int) PackageOwnershipClient {
	return &packageOwnershipClientImpl{
		client: resty.New().
			SetBaseURL(baseUrl).
			SetHeader("accept", "application/json"),
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

type packageOwnershipClientImpl struct {
	client     *resty.Client
	timeout    time.Duration
	maxRetries int
}

type authorizedPackagesRequest struct {
	User     string   `json:"user"`
	Packages []string `json:"packages"`
}

type authorizedPackagesResponse struct {
	Authorized map[string]bool `json:"authorized"`
}

func (p packageOwnershipClientImpl) GetAuthorizedPackages(ctx context.Context, user string, packages []string) (map[string]bool, error) {
	result := make(map[string]bool, len(packages))
	if len(packages) == 0 {
		return result, nil
	}
	var response authorizedPackagesResponse
	err := callWithRetry(ctx, PackageOwnershipServiceName, "isAuthorized", p.maxRetries, func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		resp, err := p.client.R().
			SetContext(callCtx).
			SetBody(authorizedPackagesRequest{User: user, Packages: packages}).
			Post("/api/acls/authorized")
		if err = checkResponse(resp, err); err != nil {
			return err
		}
		return decodeResponse(resp, &response)
	})
	if err != nil {
		return nil, err
	}
	for _, pkg := range packages {
		result[pkg] = response.Authorized[pkg]
	}
	return result, nil
}
