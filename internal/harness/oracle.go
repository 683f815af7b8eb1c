package harness

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// CheckSyntax asks the oracle whether the fixture is valid input. A
// rejection is a defect of the fixture, not of the engine.
func CheckSyntax(orc Oracle, src []byte, fixture string) error {
	if err := orc.ValidateSyntax(src); err != nil {
		return checkErr(KindFixtureDefect, fixture, err, "test file has invalid syntax according to %s", orc.Name())
	}
	return nil
}

// checkGrammarCoupling fails when the engine claims a newer grammar than
// the oracle can judge. Versions are semver, the "v" prefix is optional.
func checkGrammarCoupling(eng Engine, orc Oracle, allowNewer bool) error {
	ev, ov := eng.GrammarVersion(), orc.GrammarVersion()
	sev, sov := semverOf(ev), semverOf(ov)
	for _, v := range [...]struct{ who, raw, sv string }{{eng.Name(), ev, sev}, {orc.Name(), ov, sov}} {
		if !semver.IsValid(v.sv) {
			return fmt.Errorf("%w: %s grammar version %q is not semver", ErrConfig, v.who, v.raw)
		}
	}
	if semver.Compare(sev, sov) > 0 && !allowNewer {
		return fmt.Errorf("%w: engine %s grammar %s is newer than oracle %s grammar %s (set oracle.allow_newer_engine to override)",
			ErrConfig, eng.Name(), ev, orc.Name(), ov)
	}
	return nil
}

func semverOf(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
