/*
 * Copyright 2025 Data Omni Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dataomni/schema-scoring/internal/config"
	"github.com/dataomni/schema-scoring/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the schema scoring HTTP API",
	Long: `Serve exposes the scoring engine over HTTP. POST a schema to
/score_schema to receive the quality report; /healthz reports liveness.
The server drains in-flight requests on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, cleanup, err := setupEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(engine, logger, config.GetConfig().ListenAddr)
	return srv.ListenAndServe(ctx)
}
