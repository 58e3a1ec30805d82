package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Marketplace automation metadata
			CREATE TABLE automations (
				id VARCHAR(255) PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				description TEXT NOT NULL,
				category VARCHAR(100),
				features JSONB
			);

			CREATE INDEX idx_automations_category ON automations(category);

			-- One live runtime configuration per (user, automation)
			CREATE TABLE runtime_configs (
				user_id VARCHAR(255) NOT NULL,
				automation_id VARCHAR(255) NOT NULL,
				secret_key TEXT,
				webhook_url TEXT,
				custom_prompt TEXT,
				enabled BOOLEAN NOT NULL DEFAULT false,
				schedule VARCHAR(20) NOT NULL DEFAULT 'manual',
				config_values JSONB,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				PRIMARY KEY (user_id, automation_id)
			);

			-- Append-only execution history
			CREATE TABLE execution_logs (
				id UUID PRIMARY KEY,
				automation_id VARCHAR(255) NOT NULL,
				user_id VARCHAR(255) NOT NULL,
				status VARCHAR(20) NOT NULL CHECK (status IN ('success', 'error', 'triggered')),
				message TEXT,
				input_data JSONB,
				output_data JSONB,
				duration_ms BIGINT NOT NULL DEFAULT 0,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_execution_logs_user_automation
				ON execution_logs(user_id, automation_id, created_at DESC);
		`,
	}
}
