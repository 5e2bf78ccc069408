package slack

// blockerModalView is the Block Kit definition of the blocker intake modal.
func blockerModalView() map[string]any {
	return map[string]any{
		"type":        "modal",
		"callback_id": "blocker_submission",
		"title":       plainText("Log a Blocker"),
		"submit":      plainText("Submit"),
		"close":       plainText("Cancel"),
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": "*Log a blocker that is impacting your productivity*",
				},
			},
			{"type": "divider"},
			{
				"type":     "input",
				"block_id": "description_block",
				"element": map[string]any{
					"type":        "plain_text_input",
					"action_id":   "description_input",
					"multiline":   true,
					"placeholder": plainText("Describe your blocker in detail..."),
				},
				"label": plainText("Description"),
			},
			{
				"type":     "input",
				"block_id": "category_block",
				"element": map[string]any{
					"type":        "static_select",
					"action_id":   "category_select",
					"placeholder": plainText("Select a category"),
					"options": []map[string]any{
						selectOption("Process"),
						selectOption("Technical"),
						selectOption("Dependency"),
						selectOption("Infrastructure"),
						selectOption("Other"),
					},
				},
				"label": plainText("Category"),
			},
			{
				"type":     "input",
				"block_id": "severity_block",
				"element": map[string]any{
					"type":        "static_select",
					"action_id":   "severity_select",
					"placeholder": plainText("Select severity"),
					"options": []map[string]any{
						selectOption("Low"),
						selectOption("Medium"),
						selectOption("High"),
					},
				},
				"label": plainText("Severity"),
			},
		},
	}
}

// confirmationBlocks renders the DM receipt for a submitted blocker.
func confirmationBlocks(description, category, severity, frontendURL string) []map[string]any {
	return []map[string]any{
		{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": "*Blocker logged successfully!*",
			},
		},
		{
			"type": "section",
			"fields": []map[string]any{
				{"type": "mrkdwn", "text": "*Category:*\n" + category},
				{"type": "mrkdwn", "text": "*Severity:*\n" + severity},
			},
		},
		{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": "*Description:*\n" + description,
			},
		},
		{
			"type": "context",
			"elements": []map[string]any{
				{"type": "mrkdwn", "text": "View in <" + frontendURL + "/blockers|Momentum>"},
			},
		},
	}
}

func plainText(text string) map[string]any {
	return map[string]any{"type": "plain_text", "text": text}
}

func selectOption(value string) map[string]any {
	return map[string]any{"text": plainText(value), "value": value}
}
