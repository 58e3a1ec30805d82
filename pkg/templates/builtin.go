package templates

import "github.com/readyreserve/readyflow/pkg/models"

func builtinTemplates() []*models.WorkflowTemplate {
	return []*models.WorkflowTemplate{
		customerSupportChatbot(),
		leadQualification(),
		socialMediaPosting(),
		documentProcessing(),
		analyticsDashboard(),
	}
}

func customerSupportChatbot() *models.WorkflowTemplate {
	return &models.WorkflowTemplate{
		ID:          "customer-support-chatbot",
		Name:        "ReadyReserve AI Customer Support",
		Description: "AI-powered customer support chatbot that handles inquiries 24/7",
		Category:    "Customer Engagement",
		Tags:        []string{"chatbot", "support", "ai", "customer-service"},
		Nodes: []*models.TemplateNode{
			{
				ID:   "webhook-trigger",
				Name: "Webhook Trigger",
				Kind: models.NodeKindTriggerWebhook,
				Parameters: map[string]models.ParameterValue{
					"path":   models.Literal("customer-support"),
					"method": models.Literal("POST"),
				},
			},
			{
				ID:   DispatchNodeID,
				Name: "ReadyReserve AI",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"method":       models.Literal("POST"),
					"api_key":      models.ConfigRef("openaiApiKey"),
					"instructions": models.ConfigRef("customPrompts"),
					"message":      models.NodeOutputRef("", "message"),
					"user_id":      models.NodeOutputRef("", "user_id"),
					"context":      models.NodeOutputRef("", "context"),
				},
			},
			{
				ID:   "format-response",
				Name: "Format Response",
				Kind: models.NodeKindActionTransform,
				Parameters: map[string]models.ParameterValue{
					"source":           models.NodeOutputRef(DispatchNodeID, "processed_data.data"),
					"signature":        models.ConfigRef("businessName"),
					"escalation_email": models.ConfigRef("supportEmail"),
				},
			},
			{
				ID:   "webhook-response",
				Name: "Webhook Response",
				Kind: models.NodeKindResponder,
				Parameters: map[string]models.ParameterValue{
					"respond_with": models.Literal("json"),
					"body":         models.NodeOutputRef("", "response"),
				},
			},
		},
		Connections: map[string][]models.Connection{
			"webhook-trigger": {{TargetNodeID: DispatchNodeID}},
			DispatchNodeID:    {{TargetNodeID: "format-response"}},
			"format-response": {{TargetNodeID: "webhook-response"}},
		},
		ConfigFields: []models.ConfigField{
			{
				ID:          "openaiApiKey",
				Label:       "OpenAI API Key",
				Type:        models.FieldTypeSecret,
				Required:    true,
				Placeholder: "sk-...",
				Description: "Required for AI responses",
				Category:    models.FieldCategoryCredentials,
			},
			{
				ID:          "businessName",
				Label:       "Business Name",
				Type:        models.FieldTypeText,
				Required:    true,
				Placeholder: "Your Company Name",
				Description: "Used in AI responses",
				Category:    models.FieldCategoryBusinessInfo,
			},
			{
				ID:          "supportEmail",
				Label:       "Support Email",
				Type:        models.FieldTypeEmail,
				Required:    true,
				Placeholder: "support@yourcompany.com",
				Description: "Contact email for escalations",
				Category:    models.FieldCategoryBusinessInfo,
			},
			{
				ID:          "customPrompts",
				Label:       "Custom Support Instructions",
				Type:        models.FieldTypeMultiline,
				Placeholder: "Add specific instructions for your support team...",
				Description: "Customize how the AI responds to customers",
				Category:    models.FieldCategoryCustom,
			},
		},
		DeploymentInstructions: []string{
			"Download the workflow file",
			"Import it into your workflow engine instance",
			"Add your OpenAI API key in the credentials section",
			"Configure your business information",
			"Activate the workflow",
			"Test with a sample customer message",
		},
	}
}

func leadQualification() *models.WorkflowTemplate {
	return &models.WorkflowTemplate{
		ID:          "lead-qualification",
		Name:        "ReadyReserve AI Lead Qualification",
		Description: "Automatically qualify leads based on behavior and demographics",
		Category:    "Marketing & Sales",
		Tags:        []string{"lead-qualification", "sales", "crm", "ai"},
		Nodes: []*models.TemplateNode{
			{
				ID:   "webhook-trigger",
				Name: "Lead Data Webhook",
				Kind: models.NodeKindTriggerWebhook,
				Parameters: map[string]models.ParameterValue{
					"path":   models.Literal("lead-qualification"),
					"method": models.Literal("POST"),
				},
			},
			{
				ID:   DispatchNodeID,
				Name: "ReadyReserve AI Lead Analysis",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"method":    models.Literal("POST"),
					"lead_data": models.NodeOutputRef("", "body"),
				},
			},
			{
				ID:   "update-crm",
				Name: "Update CRM",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"url":                 models.ConfigRef("crmEndpoint"),
					"method":              models.Literal("PATCH"),
					"authorization":       models.ConfigRef("crmApiToken"),
					"lead_id":             models.NodeOutputRef("", "lead_id"),
					"qualification_score": models.NodeOutputRef(DispatchNodeID, "processed_data.qualification_score"),
					"qualification_status": models.NodeOutputRef(
						DispatchNodeID, "processed_data.status"),
					"ai_notes": models.NodeOutputRef(DispatchNodeID, "processed_data.notes"),
				},
			},
			{
				ID:   "webhook-response",
				Name: "Response",
				Kind: models.NodeKindResponder,
				Parameters: map[string]models.ParameterValue{
					"respond_with": models.Literal("json"),
					"body":         models.NodeOutputRef("", "response"),
				},
			},
		},
		Connections: map[string][]models.Connection{
			"webhook-trigger": {{TargetNodeID: DispatchNodeID}},
			DispatchNodeID:    {{TargetNodeID: "update-crm"}},
			"update-crm":      {{TargetNodeID: "webhook-response"}},
		},
		ConfigFields: []models.ConfigField{
			{
				ID:          "crmEndpoint",
				Label:       "CRM API Endpoint",
				Type:        models.FieldTypeURL,
				Required:    true,
				Placeholder: "https://api.yourcrm.com/v1/leads",
				Description: "Where qualified leads are written back",
				Category:    models.FieldCategoryEndpoints,
			},
			{
				ID:          "crmApiToken",
				Label:       "CRM API Token",
				Type:        models.FieldTypeSecret,
				Required:    true,
				Description: "Bearer token for the CRM API",
				Category:    models.FieldCategoryCredentials,
			},
		},
		DeploymentInstructions: []string{
			"Download the workflow file",
			"Import it into your workflow engine instance",
			"Point the CRM endpoint at your leads API",
			"Activate the workflow",
			"Send a test lead to the webhook",
		},
	}
}

func socialMediaPosting() *models.WorkflowTemplate {
	return &models.WorkflowTemplate{
		ID:          "social-media-posting",
		Name:        "ReadyReserve AI Social Media",
		Description: "Generate and schedule engaging social media posts",
		Category:    "Marketing & Sales",
		Tags:        []string{"social-media", "content-generation", "marketing", "ai"},
		Nodes: []*models.TemplateNode{
			{
				ID:   "schedule-trigger",
				Name: "Schedule Trigger",
				Kind: models.NodeKindTriggerSchedule,
				Parameters: map[string]models.ParameterValue{
					"cron": models.Literal("0 */2 * * *"),
				},
			},
			{
				ID:   DispatchNodeID,
				Name: "ReadyReserve AI Content Generator",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"method":   models.Literal("POST"),
					"platform": models.Literal("twitter"),
					"topic":    models.ConfigRef("contentTopic"),
					"tone":     models.ConfigRef("brandVoice"),
					"length":   models.Literal("short"),
				},
			},
			{
				ID:   "post-to-social",
				Name: "Post to Social Media",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"url":           models.Literal("https://api.twitter.com/2/tweets"),
					"method":        models.Literal("POST"),
					"authorization": models.ConfigRef("twitterApiToken"),
					"text":          models.NodeOutputRef(DispatchNodeID, "processed_data.content"),
				},
			},
		},
		Connections: map[string][]models.Connection{
			"schedule-trigger": {{TargetNodeID: DispatchNodeID}},
			DispatchNodeID:     {{TargetNodeID: "post-to-social"}},
		},
		ConfigFields: []models.ConfigField{
			{
				ID:          "twitterApiToken",
				Label:       "Twitter API Token",
				Type:        models.FieldTypeSecret,
				Required:    true,
				Description: "Bearer token used to publish posts",
				Category:    models.FieldCategoryCredentials,
			},
			{
				ID:          "contentTopic",
				Label:       "Content Topic",
				Type:        models.FieldTypeText,
				Placeholder: "business_automation",
				Description: "Default topic for generated posts",
				Category:    models.FieldCategoryCustom,
			},
			{
				ID:          "brandVoice",
				Label:       "Brand Voice",
				Type:        models.FieldTypeMultiline,
				Placeholder: "Professional, approachable, no jargon...",
				Description: "Tone guidance for generated content",
				Category:    models.FieldCategoryCustom,
			},
		},
		DeploymentInstructions: []string{
			"Download the workflow file",
			"Import it into your workflow engine instance",
			"Add your Twitter API token",
			"Adjust the posting schedule if needed",
			"Activate the workflow",
		},
	}
}

func documentProcessing() *models.WorkflowTemplate {
	return &models.WorkflowTemplate{
		ID:          "document-processing",
		Name:        "ReadyReserve AI Document Processing",
		Description: "Extract data from invoices, receipts, and documents",
		Category:    "Operations",
		Tags:        []string{"document-processing", "ocr", "automation", "ai"},
		Nodes: []*models.TemplateNode{
			{
				ID:   "webhook-trigger",
				Name: "Document Upload Webhook",
				Kind: models.NodeKindTriggerWebhook,
				Parameters: map[string]models.ParameterValue{
					"path":   models.Literal("document-processing"),
					"method": models.Literal("POST"),
				},
			},
			{
				ID:   "extract-text",
				Name: "Extract Text from Document",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"url":          models.Literal("https://api.ocr.space/parse/image"),
					"method":       models.Literal("POST"),
					"apikey":       models.ConfigRef("ocrApiKey"),
					"document_url": models.NodeOutputRef("", "document_url"),
					"language":     models.Literal("eng"),
				},
			},
			{
				ID:   DispatchNodeID,
				Name: "ReadyReserve AI Document Analysis",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"method":         models.Literal("POST"),
					"extracted_text": models.NodeOutputRef("extract-text", "ParsedResults[0].ParsedText"),
					"document_type":  models.NodeOutputRef("", "document_type"),
				},
			},
			{
				ID:   "save-results",
				Name: "Save Results",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"url":            models.ConfigRef("storageEndpoint"),
					"method":         models.Literal("POST"),
					"authorization":  models.ConfigRef("storageToken"),
					"document_id":    models.NodeOutputRef("", "document_id"),
					"extracted_data": models.NodeOutputRef(DispatchNodeID, "processed_data"),
				},
			},
			{
				ID:   "webhook-response",
				Name: "Response",
				Kind: models.NodeKindResponder,
				Parameters: map[string]models.ParameterValue{
					"respond_with": models.Literal("json"),
					"body":         models.NodeOutputRef("", "response"),
				},
			},
		},
		Connections: map[string][]models.Connection{
			"webhook-trigger": {{TargetNodeID: "extract-text"}},
			"extract-text":    {{TargetNodeID: DispatchNodeID}},
			DispatchNodeID:    {{TargetNodeID: "save-results"}},
			"save-results":    {{TargetNodeID: "webhook-response"}},
		},
		ConfigFields: []models.ConfigField{
			{
				ID:          "ocrApiKey",
				Label:       "OCR API Key",
				Type:        models.FieldTypeSecret,
				Required:    true,
				Description: "Key for the text extraction service",
				Category:    models.FieldCategoryCredentials,
			},
			{
				ID:          "storageEndpoint",
				Label:       "Results Endpoint",
				Type:        models.FieldTypeURL,
				Required:    true,
				Placeholder: "https://api.yourstore.com/documents",
				Description: "Where extracted data is stored",
				Category:    models.FieldCategoryEndpoints,
			},
			{
				ID:          "storageToken",
				Label:       "Results API Token",
				Type:        models.FieldTypeSecret,
				Required:    true,
				Category:    models.FieldCategoryCredentials,
			},
		},
		DeploymentInstructions: []string{
			"Download the workflow file",
			"Import it into your workflow engine instance",
			"Add your OCR and storage credentials",
			"Activate the workflow",
			"Upload a sample document to test extraction",
		},
	}
}

func analyticsDashboard() *models.WorkflowTemplate {
	return &models.WorkflowTemplate{
		ID:          "analytics-dashboard",
		Name:        "ReadyReserve AI Analytics",
		Description: "Generate real-time business intelligence with AI insights",
		Category:    "Data & Insights",
		Tags:        []string{"analytics", "dashboard", "business-intelligence", "ai"},
		Nodes: []*models.TemplateNode{
			{
				ID:   "schedule-trigger",
				Name: "Daily Analytics Trigger",
				Kind: models.NodeKindTriggerSchedule,
				Parameters: map[string]models.ParameterValue{
					"cron": models.Literal("0 9 * * *"),
				},
			},
			{
				ID:   "fetch-data",
				Name: "Fetch Business Data",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"url":           models.ConfigRef("dataSourceUrl"),
					"method":        models.Literal("GET"),
					"authorization": models.ConfigRef("dataSourceToken"),
				},
			},
			{
				ID:   DispatchNodeID,
				Name: "ReadyReserve AI Analytics",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"method":        models.Literal("POST"),
					"business_data": models.NodeOutputRef("fetch-data", "body"),
					"analysis_type": models.Literal("daily_summary"),
				},
			},
			{
				ID:   "send-report",
				Name: "Send Analytics Report",
				Kind: models.NodeKindActionHTTP,
				Parameters: map[string]models.ParameterValue{
					"url":           models.Literal("https://slack.com/api/chat.postMessage"),
					"method":        models.Literal("POST"),
					"authorization": models.ConfigRef("slackToken"),
					"channel":       models.ConfigRef("slackChannel"),
					"text":          models.NodeOutputRef(DispatchNodeID, "processed_data.summary"),
				},
			},
		},
		Connections: map[string][]models.Connection{
			"schedule-trigger": {{TargetNodeID: "fetch-data"}},
			"fetch-data":       {{TargetNodeID: DispatchNodeID}},
			DispatchNodeID:     {{TargetNodeID: "send-report"}},
		},
		ConfigFields: []models.ConfigField{
			{
				ID:          "dataSourceUrl",
				Label:       "Data Source URL",
				Type:        models.FieldTypeURL,
				Required:    true,
				Placeholder: "https://api.yourapp.com/metrics",
				Description: "Business data endpoint polled each morning",
				Category:    models.FieldCategoryEndpoints,
			},
			{
				ID:          "dataSourceToken",
				Label:       "Data Source Token",
				Type:        models.FieldTypeSecret,
				Required:    true,
				Category:    models.FieldCategoryCredentials,
			},
			{
				ID:          "slackToken",
				Label:       "Slack Bot Token",
				Type:        models.FieldTypeSecret,
				Required:    true,
				Placeholder: "xoxb-...",
				Category:    models.FieldCategoryCredentials,
			},
			{
				ID:          "slackChannel",
				Label:       "Slack Channel",
				Type:        models.FieldTypeText,
				Required:    true,
				Placeholder: "#analytics",
				Description: "Channel that receives the daily report",
				Category:    models.FieldCategoryBusinessInfo,
			},
		},
		DeploymentInstructions: []string{
			"Download the workflow file",
			"Import it into your workflow engine instance",
			"Connect your data source and Slack credentials",
			"Activate the workflow",
			"Wait for the next 9 AM run or trigger manually",
		},
	}
}
