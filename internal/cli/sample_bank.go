package cli

import "academy-quiz-service/internal/domain"

// sampleBank provides a minimal catalog for demo mode; production deployments
// load partitions from Postgres instead.
func sampleBank() domain.Bank {
	return domain.Bank{
		"web": {
			"easy": {
				{
					ID:          1,
					Prompt:      "Which HTML tag creates a hyperlink?",
					Options:     []string{"<link>", "<a>", "<href>", "<url>"},
					Correct:     1,
					Explanation: "The <a> (anchor) tag with an href attribute creates a hyperlink.",
				},
				{
					ID:          2,
					Prompt:      "Which CSS property sets the text color?",
					Options:     []string{"font-color", "text-style", "color", "foreground"},
					Correct:     2,
					Explanation: "The color property controls the foreground text color.",
				},
				{
					ID:          3,
					Prompt:      "What does HTTP status 404 mean?",
					Options:     []string{"Server error", "Not found", "Forbidden", "Redirect"},
					Correct:     1,
					Explanation: "404 indicates the requested resource could not be found.",
				},
			},
			"medium": {
				{
					ID:          10,
					Prompt:      "Which header enables cross-origin requests?",
					Options:     []string{"X-Frame-Options", "Access-Control-Allow-Origin", "Content-Security-Policy", "Origin"},
					Correct:     1,
					Explanation: "Access-Control-Allow-Origin tells the browser which origins may read the response.",
				},
				{
					ID:          11,
					Prompt:      "What does a 301 response tell the client?",
					Options:     []string{"Resource moved permanently", "Resource deleted", "Retry later", "Cache expired"},
					Correct:     0,
					Explanation: "301 Moved Permanently instructs clients to use the new URL from now on.",
				},
			},
		},
		"dispatch": {
			"easy": {
				{
					ID:          20,
					Prompt:      "What does ETA stand for?",
					Options:     []string{"Estimated Time of Arrival", "Extended Travel Allowance", "Expected Transport Action", "End of Transit Advisory"},
					Correct:     0,
					Explanation: "ETA is the estimated time of arrival of a shipment or vehicle.",
				},
				{
					ID:          21,
					Prompt:      "Which document accompanies a freight shipment?",
					Options:     []string{"Invoice", "Bill of lading", "Receipt", "Manifest card"},
					Correct:     1,
					Explanation: "The bill of lading is the contract and receipt for transported goods.",
				},
			},
		},
		"cybersecurity": {
			"easy": {
				{
					ID:          30,
					Prompt:      "What does phishing attempt to do?",
					Options:     []string{"Encrypt your files", "Trick you into revealing credentials", "Slow down your network", "Scan open ports"},
					Correct:     1,
					Explanation: "Phishing uses deceptive messages to steal credentials or sensitive data.",
				},
				{
					ID:          31,
					Prompt:      "What is two-factor authentication?",
					Options:     []string{"Two passwords", "A second verification step beyond the password", "A backup account", "Encrypted login"},
					Correct:     1,
					Explanation: "2FA combines something you know with something you have or are.",
				},
			},
			"hard": {
				{
					ID:          40,
					Prompt:      "Which attack exploits unsanitized SQL input?",
					Options:     []string{"Cross-site scripting", "SQL injection", "CSRF", "Buffer overflow"},
					Correct:     1,
					Explanation: "SQL injection inserts attacker-controlled SQL through unsanitized inputs.",
				},
			},
		},
	}
}
