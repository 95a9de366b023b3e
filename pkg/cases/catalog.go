package cases

var catalog = []Case{
	{
		ID:          "fund-analysis",
		Title:       "Analyzing a Single Fund",
		Subtitle:    "A full workup of E Fund Blue Chip Select",
		Level:       LevelBeginner,
		Minutes:     90,
		Description: "Work through a seven-step framework to analyze one fund, from basic facts to an investment recommendation.",
		Objectives: []string{
			"Apply the seven-step fund analysis framework",
			"Read performance, holdings, and fee data critically",
			"Write a professional analysis report",
		},
		Questions: []Question{
			{
				ID:     "downside",
				Prompt: "Which figure tells you the most about a fund's downside risk?",
				Options: []string{
					"Last year's return",
					"Maximum drawdown",
					"Fund size",
					"Manager tenure",
				},
				answer: 1,
			},
			{
				ID:     "concentration",
				Prompt: "A fund holding 28% of its assets in one sector mainly adds which risk?",
				Options: []string{
					"Interest rate risk",
					"Concentration risk",
					"Currency risk",
					"Settlement risk",
				},
				answer: 1,
			},
			{
				ID:     "sharpe",
				Prompt: "The Sharpe ratio relates a fund's excess return to its",
				Options: []string{
					"Fee load",
					"Volatility",
					"Age",
					"Turnover",
				},
				answer: 1,
			},
		},
	},
	{
		ID:          "steady-portfolio",
		Title:       "Building a Steady Portfolio",
		Subtitle:    "An allocation plan for 500,000 CNY",
		Level:       LevelIntermediate,
		Minutes:     180,
		Description: "Design a cautious portfolio for a 45-year-old client and learn the full asset allocation workflow.",
		Objectives: []string{
			"Run the asset allocation workflow end to end",
			"Tailor a plan to a client's constraints",
			"Use correlation to spread risk",
			"Combine the portfolio analysis tools",
		},
		Questions: []Question{
			{
				ID:     "bond-slice",
				Prompt: "A cautious plan for 500,000 CNY puts 50% in bond funds. How much is that?",
				Options: []string{
					"100,000 CNY",
					"150,000 CNY",
					"250,000 CNY",
					"300,000 CNY",
				},
				answer: 2,
			},
			{
				ID:     "correlation",
				Prompt: "Why mix funds whose returns have low correlation?",
				Options: []string{
					"It lowers management fees",
					"Combined swings get smoother",
					"It guarantees a positive return",
					"It speeds up redemptions",
				},
				answer: 1,
			},
			{
				ID:     "target",
				Prompt: "Which annual return target is realistic for a cautious five-year plan?",
				Options: []string{
					"2%",
					"6-8%",
					"15%",
					"25%",
				},
				answer: 1,
			},
		},
	},
	{
		ID:          "family-plan",
		Title:       "A Family Financial Plan",
		Subtitle:    "A complete plan for a family of three",
		Level:       LevelIntermediate,
		Minutes:     150,
		Description: "Draft a full financial plan for a household: cash flow, reserves, insurance, and the investment ladder.",
		Objectives: []string{
			"Follow the household planning sequence",
			"Manage monthly cash flow",
			"Size an emergency reserve",
			"Draft a tiered investment plan",
		},
		Questions: []Question{
			{
				ID:     "first-step",
				Prompt: "What comes first when planning a family's finances?",
				Options: []string{
					"Picking hot funds",
					"Building an emergency reserve",
					"Buying gold",
					"Opening a margin account",
				},
				answer: 1,
			},
			{
				ID:     "reserve",
				Prompt: "A reasonable emergency reserve covers living costs for",
				Options: []string{
					"One week",
					"One month",
					"Three to six months",
					"Five years",
				},
				answer: 2,
			},
		},
	},
	{
		ID:          "risk-management",
		Title:       "Managing Portfolio Risk",
		Subtitle:    "Evaluating and trimming portfolio risk",
		Level:       LevelAdvanced,
		Minutes:     120,
		Description: "Read the risk numbers of a live portfolio and rework it to cut drawdowns without giving up the plan.",
		Objectives: []string{
			"Interpret the standard risk metrics",
			"Evaluate a portfolio's risk posture",
			"Rebalance to reduce risk",
		},
		Questions: []Question{
			{
				ID:     "drawdown",
				Prompt: "Maximum drawdown measures",
				Options: []string{
					"The largest peak-to-trough loss",
					"The average yearly gain",
					"The dividend yield",
					"The total fees paid",
				},
				answer: 0,
			},
			{
				ID:     "volatility",
				Prompt: "Annualized volatility scales up the",
				Options: []string{
					"Mean return",
					"Standard deviation of returns",
					"Beta against the index",
					"Alpha of the manager",
				},
				answer: 1,
			},
			{
				ID:     "spread",
				Prompt: "Which action reduces concentration risk?",
				Options: []string{
					"Adding a highly correlated fund",
					"Spreading across asset classes",
					"Doubling the largest holding",
					"Adding leverage",
				},
				answer: 1,
			},
		},
	},
}
