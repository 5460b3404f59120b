package agent

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"github.com/yxtq/tzero"
	"github.com/yxtq/tzero/renderer"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user runs a same-day (T0) trading desk on A-share accounts. They are here primarily
			to get information about their positions, their round trips and their rolling ledgers.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the market expert. It grounds its answers with search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of the A-share market, its listed companies and
		the latest news about them.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in the A-share market. You can search and find about anything related to
			listed companies, corporate actions, markets and regulators. You leverage Google Search to
			ground your assertions in a solid truth.
				`}}},
		},
	}
}

// NewDeskClerk returns the desk expert. It reads the holdings file at
// cctjPath through its function tools.
func NewDeskClerk(cctjPath string) *Expert {
	lib := []Function{deskPositions(cctjPath), adjustmentFactor}

	return &Expert{
		Name: "DeskClerk",
		Description: `This is the desk clerk, in charge of reading the desk's positions
		and computing ledger adjustment figures. Ask the clerk about accounts, holdings,
		sellable volumes and corporate-action factors.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the clerk of a T0 trading desk. You know how to use the Tools to
				extract relevant information about the desk:
				  - accounts and their holdings
				  - adjustment factors and amounts for corporate actions
				Pardon the team's approximative language and figure out what they meant.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// deskPositions reads the holdings file and renders the desk, or a single
// account when the model asks for one.
func deskPositions(cctjPath string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Positions",
			Description: `Positions reads the desk's holdings file and returns the positions
			of every account, or of a single account when 'account' is given.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account": {
						Type:        genai.TypeString,
						Description: "The account id to report on. The whole desk is the default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report of the positions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			res, err := tzero.ParseCCTJFile(cctjPath)
			if err != nil {
				return errorResponse(id, "Positions", err)
			}
			m := tzero.NewPositionManager()
			if _, err := m.Load(res.Records); err != nil {
				return errorResponse(id, "Positions", err)
			}

			output := ""
			if account, ok := args["account"].(string); ok && account != "" {
				a := m.Account(account)
				if a == nil {
					return errorResponse(id, "Positions", fmt.Errorf("unknown account %q", account))
				}
				output = renderer.AccountMarkdown(a)
			} else {
				output = renderer.DeskMarkdown(m.Summary())
			}

			return &genai.FunctionResponse{
				ID:   id,
				Name: "Positions",
				Response: map[string]any{
					"output": output,
				},
			}
		},
	}
}

// adjustmentFactor computes the ledger AF and E from corporate-action terms.
var adjustmentFactor = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "AdjustmentFactor",
		Description: `AdjustmentFactor computes the multiplicative adjustment factor (AF) and the
		additive cash amount (E) that roll a ledger across a corporate action:
		current = previous × AF + E. Cash dividends feed only E.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"dividend_per_share": {Type: genai.TypeNumber, Description: "Cash dividend per share."},
				"rights_ratio":       {Type: genai.TypeNumber, Description: "Rights issue ratio, new shares per held share."},
				"rights_price":       {Type: genai.TypeNumber, Description: "Rights issue subscription price."},
				"bonus_ratio":        {Type: genai.TypeNumber, Description: "Bonus shares per held share."},
				"split_ratio":        {Type: genai.TypeNumber, Description: "Split ratio, new shares per old share."},
				"current_price":      {Type: genai.TypeNumber, Description: "Current market price, needed for rights issues."},
				"total_shares":       {Type: genai.TypeNumber, Description: "Held shares, to spread the dividend over."},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The factor AF and the amount E.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		num := func(key string) decimal.Decimal {
			if v, ok := args[key].(float64); ok {
				return decimal.NewFromFloat(v)
			}
			return decimal.Zero
		}

		af := tzero.AdjustmentFactor(
			num("dividend_per_share"),
			num("rights_ratio"),
			num("rights_price"),
			num("bonus_ratio"),
			num("split_ratio"),
			num("current_price"),
		)
		shares := int64(0)
		if v, ok := args["total_shares"].(float64); ok {
			shares = int64(v)
		}
		e := tzero.AdjustmentAmount(num("dividend_per_share"), shares, tzero.M(0))

		return &genai.FunctionResponse{
			ID:   id,
			Name: "AdjustmentFactor",
			Response: map[string]any{
				"output": fmt.Sprintf("AF = %s, E = %s", af, e),
			},
		}
	},
}
