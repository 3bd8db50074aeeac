// Copyright 2025 The Resumatch Authors
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

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/resumatch/resumatch/config"
)

// RelevanceJudge scores one text chunk's relevance to a target role on a
// 0 to 100 scale.
type RelevanceJudge interface {
	Score(ctx context.Context, role, chunk string) (float64, error)
}

// ChatJudge delegates scoring to an OpenAI-compatible chat completion
// endpoint with a fixed zero-temperature prompt.
type ChatJudge struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewChatJudge creates a judge from configuration.
func NewChatJudge(cfg *config.JudgeConfig) (*ChatJudge, error) {
	if cfg == nil {
		return nil, fmt.Errorf("judge config is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("judge api_key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	timeout := 20 * time.Second
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}

	return &ChatJudge{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Score asks the model to rate the chunk's relevance to the role and
// parses the leading number from its reply.
func (j *ChatJudge) Score(ctx context.Context, role, chunk string) (float64, error) {
	prompt := fmt.Sprintf("请根据与 %s 岗位的相关性，对以下文本打分（满分100分），只返回数字：\n\n%s", role, chunk)

	reqBody, err := json.Marshal(chatRequest{
		Model:       j.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", j.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+j.apiKey)

	resp, err := j.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("judge API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Choices) == 0 {
		return 0, fmt.Errorf("judge returned no choices")
	}

	return parseScore(response.Choices[0].Message.Content)
}

// parseScore extracts the first whitespace-delimited token of the reply as
// a number and clamps it to [0,100].
func parseScore(reply string) (float64, error) {
	fields := strings.Fields(strings.TrimSpace(reply))
	if len(fields) == 0 {
		return 0, fmt.Errorf("judge returned empty reply")
	}

	score, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "分"), 64)
	if err != nil {
		return 0, fmt.Errorf("judge returned non-numeric reply %q", reply)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

// Ensure ChatJudge implements RelevanceJudge.
var _ RelevanceJudge = (*ChatJudge)(nil)
