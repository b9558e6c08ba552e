package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "questionnaire_2024.csv")
	p.OnLoadComplete(ctx, "questionnaire_2024.csv", 1200, time.Second, nil)
	p.OnExtractComplete(ctx, 40, 11, time.Millisecond, nil)
	p.OnLayoutStart(ctx, 9, 16)
	p.OnLayoutComplete(ctx, time.Second, nil)
	p.OnRenderStart(ctx, []string{"png"})
	p.OnRenderComplete(ctx, []string{"png"}, time.Second, nil)

	o := NoopOutputHooks{}
	o.OnWrite(ctx, "familiarity-network.png", "png", 1024, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Output().(NoopOutputHooks); !ok {
		t.Error("Output() should return NoopOutputHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customOutput := &testOutputHooks{}
	SetOutputHooks(customOutput)
	if Output() != customOutput {
		t.Error("SetOutputHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Output().(NoopOutputHooks); !ok {
		t.Error("Reset() should restore NoopOutputHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	out := &testOutputHooks{}
	SetOutputHooks(out)
	SetOutputHooks(nil)
	if Output() != out {
		t.Error("SetOutputHooks(nil) should be ignored")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetPipelineHooks(&testPipelineHooks{})
		}()
		go func() {
			defer wg.Done()
			Pipeline().OnLoadStart(context.Background(), "x.csv")
		}()
	}
	wg.Wait()
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testOutputHooks struct{ NoopOutputHooks }
