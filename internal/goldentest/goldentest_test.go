package goldentest

import "testing"

func TestGoldenFixtures(t *testing.T) {
	cases := ListTestCases("testdata")
	if len(cases) == 0 {
		t.Fatalf("no fixtures found")
	}

	tester := &Tester{Cases: cases}
	for _, r := range tester.Run() {
		if !r.Passed() {
			t.Errorf("%v", r)
		}
	}
}
