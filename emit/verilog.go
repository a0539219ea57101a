package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/fslivovsky/unique/gatedag"
)

// Verilog writes g as a single "definitions" module: query variables that
// received a definition become outputs, the remaining prefix variables
// become inputs, and every definition alias above the prefix boundary
// becomes an internal wire, each driven by an "assign" statement. Only
// meaningful for 2QBF instances with a spliced definition set. Grounded on
// QBFParser::doWriteVerilog / printAndOrGateVerilog / paste.
func Verilog(w io.Writer, g *gatedag.Graph) error {
	var inputIDs, outputIDs, auxiliaryIDs []string
	for a := gatedag.Alias(1); a < g.VariableGateBoundary; a++ {
		gate := g.Gate(a)
		if gate.Kind == gatedag.KindUniversal || gate.Kind == gatedag.KindExistential {
			inputIDs = append(inputIDs, verilogID(gate.ID))
		} else {
			outputIDs = append(outputIDs, verilogID(gate.ID))
		}
	}
	for _, a := range g.DefinitionAliases {
		if a >= g.VariableGateBoundary {
			auxiliaryIDs = append(auxiliaryIDs, verilogID(g.Gate(a).ID))
		}
	}

	if _, err := fmt.Fprintf(w, "module definitions(%s, %s);\n",
		strings.Join(inputIDs, ", "), strings.Join(outputIDs, ", ")); err != nil {
		return err
	}
	if len(inputIDs) > 0 {
		if _, err := fmt.Fprintf(w, "input %s;\n", strings.Join(inputIDs, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "output %s;\n", strings.Join(outputIDs, ", ")); err != nil {
		return err
	}
	if len(auxiliaryIDs) > 0 {
		if _, err := fmt.Fprintf(w, "wire %s;\n", strings.Join(auxiliaryIDs, ", ")); err != nil {
			return err
		}
	}
	for _, a := range g.DefinitionAliases {
		if err := writeAndOrGateVerilog(w, g, a); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "endmodule\n")
	return err
}

func writeAndOrGateVerilog(w io.Writer, g *gatedag.Graph, a gatedag.Alias) error {
	gate := g.Gate(a)
	if _, err := fmt.Fprintf(w, "assign %s = ", verilogID(gate.ID)); err != nil {
		return err
	}
	if len(gate.Inputs) > 0 {
		inputs := make([]string, len(gate.Inputs))
		for i, lit := range gate.Inputs {
			alias := lit
			sign := ""
			if alias < 0 {
				alias = -alias
				sign = "~"
			}
			inputs[i] = sign + verilogID(g.Gate(gatedag.Alias(alias)).ID)
		}
		separator := " | "
		if gate.Kind == gatedag.KindAnd {
			separator = " & "
		}
		if _, err := io.WriteString(w, strings.Join(inputs, separator)); err != nil {
			return err
		}
	} else {
		constant := "0"
		if gate.Kind == gatedag.KindAnd {
			constant = "1"
		}
		if _, err := io.WriteString(w, constant); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ";\n")
	return err
}

func verilogID(id gatedag.GateID) string {
	return "v_" + string(id)
}
