// Package importer converts bank statement exports into finance
// records. Only OFX/QFX statements are supported.
package importer

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/luke-tf/finanapp/internal/model"
)

// OFXImporter parses OFX/QFX statement files.
type OFXImporter struct{}

// NewOFXImporter creates an OFX importer.
func NewOFXImporter() *OFXImporter {
	return &OFXImporter{}
}

var severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)

// preprocess fixes common formatting issues in real-world OFX exports
// before handing them to the parser.
func (p *OFXImporter) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	return severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
}

// Parse reads an OFX statement and returns candidate finance records.
// Rows without a usable amount are skipped with a warning; the records
// still go through service validation before being persisted.
func (p *OFXImporter) Parse(reader io.Reader) ([]model.FinanceRecord, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var records []model.FinanceRecord

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, tx := range stmt.BankTranList.Transactions {
				if rec, ok := p.convert(tx); ok {
					records = append(records, rec)
				}
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, tx := range stmt.BankTranList.Transactions {
				if rec, ok := p.convert(tx); ok {
					records = append(records, rec)
				}
			}
		}
	}

	slog.Info("Parsed OFX statement", "records", len(records))
	return records, nil
}

// convert maps one statement row to a finance record. OFX amounts are
// negative for outflows; the sign becomes IsExpense and the stored
// amount is always positive.
func (p *OFXImporter) convert(tx ofxgo.Transaction) (model.FinanceRecord, bool) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil || amount.IsZero() {
		slog.Warn("Skipping statement row without a usable amount",
			"id", string(tx.FiTID), "error", err)
		return model.FinanceRecord{}, false
	}

	isExpense := amount.Sign() < 0
	if isExpense {
		amount = amount.Neg()
	}

	return model.FinanceRecord{
		Title:      p.title(tx),
		Amount:     amount,
		OccurredAt: tx.DtPosted.Time,
		IsExpense:  isExpense,
	}, true
}

// title picks the most descriptive label a statement row offers.
func (p *OFXImporter) title(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}
	if name == "" {
		name = fmt.Sprintf("Imported transaction %s", tx.FiTID)
	}
	return name
}

// isGenericDescription checks whether a row's name carries no real
// information, so the memo field should be preferred.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
