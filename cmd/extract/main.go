// Copyright 2025 Poiesic Systems
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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/cinerec/ai"
	"github.com/poiesic/cinerec/ai/openai"
	"github.com/poiesic/cinerec/intent"
)

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	provider, err := openai.NewProvider(ai.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer provider.Close()

	extractor, err := intent.NewExtractor(provider.Completer(), nil)
	if err != nil {
		panic(err)
	}

	request := "a mind-bending science fiction movie about dreams"
	if len(os.Args) > 1 {
		request = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	extracted, err := extractor.Extract(ctx, request)
	if err != nil {
		panic(err)
	}

	data, err := json.MarshalIndent(extracted, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(data))
}
