package llrb

import "fmt"
import "math"
import "bytes"
import "reflect"
import "sync"
import "testing"
import "math/rand"

import "github.com/bnclabs/ordmap/api"
import "github.com/bnclabs/ordmap/dict"
import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/require"

var _ api.OrderedMap = &LLRB{}

func TestLLRBEmpty(t *testing.T) {
	llrb := NewLLRB("empty", Defaultsettings())

	if llrb.ID() != "empty" {
		t.Errorf("unexpected %v", llrb.ID())
	} else if llrb.Count() != 0 {
		t.Errorf("unexpected %v", llrb.Count())
	} else if x := llrb.Height(); x != 0 {
		t.Errorf("unexpected height %v", x)
	} else if llrb.Has(10) {
		t.Errorf("unexpected key 10")
	}
	if value, ok := llrb.Get(10); ok || value != nil {
		t.Errorf("unexpected %v %v", value, ok)
	}
	if _, _, ok := llrb.Min(); ok {
		t.Errorf("unexpected min")
	} else if _, _, ok := llrb.Max(); ok {
		t.Errorf("unexpected max")
	} else if _, ok := llrb.Delete(10); ok {
		t.Errorf("unexpected delete")
	} else if _, _, ok := llrb.DeleteMin(); ok {
		t.Errorf("unexpected deletemin")
	} else if _, _, ok := llrb.DeleteMax(); ok {
		t.Errorf("unexpected deletemax")
	}
	for _, order := range allorders {
		for key := range llrb.Traverse(order) {
			t.Errorf("unexpected key %v in %v", key, order)
		}
	}

	llrb.Validate()
	stats := llrb.Stats()
	if x := stats["n_count"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_inserts"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_deletes"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	}
	llrb.Log(true)
}

func TestLLRBSequential(t *testing.T) {
	llrb := NewLLRB("sequential", s.Settings{"validate": true})
	for key := int64(1); key <= 9; key++ {
		if _, ok := llrb.Upsert(key, key*10); ok {
			t.Errorf("unexpected old value for %v", key)
		}
		checkllrb(t, llrb)
		checkextremes(t, llrb, 1, key)
	}

	ref := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if keys := llrb.Keys(); !reflect.DeepEqual(ref, keys) {
		t.Errorf("expected %v, got %v", ref, keys)
	}

	if value, ok := llrb.Delete(2); !ok {
		t.Errorf("expected key 2")
	} else if value.(int64) != 20 {
		t.Errorf("unexpected %v", value)
	}
	checkllrb(t, llrb)
	checkextremes(t, llrb, 1, 9)

	ref = []int64{1, 3, 4, 5, 6, 7, 8, 9}
	if keys := llrb.Keys(); !reflect.DeepEqual(ref, keys) {
		t.Errorf("expected %v, got %v", ref, keys)
	} else if llrb.Has(2) {
		t.Errorf("unexpected key 2")
	} else if llrb.Count() != 8 {
		t.Errorf("unexpected %v", llrb.Count())
	}
}

func TestLLRBTraverse(t *testing.T) {
	llrb := NewLLRB("traverse", Defaultsettings())
	for key := int64(1); key <= 9; key++ {
		llrb.Upsert(key, fmt.Sprintf("val%v", key))
	}

	refs := map[api.Order][]int64{
		api.InOrder:    {1, 2, 3, 4, 5, 6, 7, 8, 9},
		api.PreOrder:   {4, 2, 1, 3, 8, 6, 5, 7, 9},
		api.PostOrder:  {1, 3, 2, 5, 7, 6, 9, 8, 4},
		api.LevelOrder: {4, 2, 8, 1, 3, 6, 9, 5, 7},
	}
	for order, ref := range refs {
		seq := llrb.Traverse(order)
		for i := 0; i < 2; i++ { // every range walks the full tree.
			keys := []int64{}
			for key, value := range seq {
				if x := fmt.Sprintf("val%v", key); value.(string) != x {
					t.Errorf("expected %v, got %v", x, value)
				}
				keys = append(keys, key)
			}
			if !reflect.DeepEqual(ref, keys) {
				t.Errorf("%v expected %v, got %v", order, ref, keys)
			}
		}
	}

	llrb.Delete(2)
	refs = map[api.Order][]int64{
		api.InOrder:    {1, 3, 4, 5, 6, 7, 8, 9},
		api.PreOrder:   {6, 4, 3, 1, 5, 8, 7, 9},
		api.LevelOrder: {6, 4, 8, 3, 5, 7, 9, 1},
	}
	for order, ref := range refs {
		keys := []int64{}
		for key := range llrb.Traverse(order) {
			keys = append(keys, key)
		}
		if !reflect.DeepEqual(ref, keys) {
			t.Errorf("%v expected %v, got %v", order, ref, keys)
		}
	}

	// early break
	for _, order := range allorders {
		count := 0
		for range llrb.Traverse(order) {
			if count++; count == 3 {
				break
			}
		}
		if count != 3 {
			t.Errorf("%v unexpected %v", order, count)
		}
	}

	if x := llrb.Stats()["n_traversals"].(int64); x != 15 {
		t.Errorf("unexpected %v", x)
	}

	// once traversal completes, read lock should be released.
	llrb.Upsert(100, "val100")
	if !llrb.Has(100) {
		t.Errorf("expected key 100")
	}
}

func TestLLRBTraverseInvalid(t *testing.T) {
	llrb := NewLLRB("invalid", Defaultsettings())
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	llrb.Traverse(api.Order(0))
}

func TestLLRBUpsertReplace(t *testing.T) {
	llrb := NewLLRB("replace", Defaultsettings())
	for key := int64(0); key < 100; key++ {
		llrb.Upsert(key, key)
	}
	before := dotdump(llrb)

	for key := int64(0); key < 100; key++ {
		if old, ok := llrb.Upsert(key, -key); !ok {
			t.Errorf("expected old value for %v", key)
		} else if old.(int64) != key {
			t.Errorf("expected %v, got %v", key, old)
		}
		if value, ok := llrb.Get(key); !ok || value.(int64) != -key {
			t.Errorf("expected %v, got %v", -key, value)
		}
	}
	if llrb.Count() != 100 {
		t.Errorf("unexpected %v", llrb.Count())
	} else if after := dotdump(llrb); after != before {
		t.Errorf("topology changed on update\n%s\n%s", before, after)
	}
	stats := llrb.Stats()
	if x := stats["n_updates"].(int64); x != 100 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_inserts"].(int64); x != 100 {
		t.Errorf("unexpected %v", x)
	}
	llrb.Validate()
}

func TestLLRBDeleteMissing(t *testing.T) {
	llrb := NewLLRB("missing", Defaultsettings())
	for key := int64(0); key < 100; key += 2 {
		llrb.Upsert(key, key)
	}
	before := dotdump(llrb)
	for key := int64(-1); key <= 101; key += 2 {
		if _, ok := llrb.Delete(key); ok {
			t.Errorf("unexpected delete %v", key)
		}
	}
	if llrb.Count() != 50 {
		t.Errorf("unexpected %v", llrb.Count())
	} else if after := dotdump(llrb); after != before {
		t.Errorf("tree changed on missing delete\n%s\n%s", before, after)
	}
	llrb.Validate()
}

func TestLLRBDeleteMinMax(t *testing.T) {
	llrb := NewLLRB("minmax", s.Settings{"validate": true})
	for _, key := range rand.Perm(200) {
		llrb.Upsert(int64(key), key)
	}

	low, high := int64(0), int64(199)
	for llrb.Count() > 0 {
		if llrb.Count()%2 == 0 {
			key, value, ok := llrb.DeleteMin()
			require.True(t, ok)
			require.Equal(t, low, key)
			require.Equal(t, int(low), value.(int))
			low++
		} else {
			key, _, ok := llrb.DeleteMax()
			require.True(t, ok)
			require.Equal(t, high, key)
			high--
		}
		checkllrb(t, llrb)
		if llrb.Count() > 0 {
			checkextremes(t, llrb, low, high)
		}
	}
	require.Equal(t, int64(0), llrb.Height())
}

func TestLLRBRandom(t *testing.T) {
	seed := rand.Int63()
	rnd := rand.New(rand.NewSource(seed))
	t.Logf("seed %v", seed)

	llrb := NewLLRB("random", Defaultsettings())
	d := dict.NewDict("reference")

	for i := 0; i < 10000; i++ {
		key := int64(rnd.Intn(2000))
		switch op := rnd.Intn(10); {
		case op < 5:
			o1, ok1 := llrb.Upsert(key, i)
			o2, ok2 := d.Upsert(key, i)
			if ok1 != ok2 || o1 != o2 {
				t.Fatalf("Upsert(%v) {%v,%v} != {%v,%v}", key, o1, ok1, o2, ok2)
			}
		case op < 8:
			o1, ok1 := llrb.Delete(key)
			o2, ok2 := d.Delete(key)
			if ok1 != ok2 || o1 != o2 {
				t.Fatalf("Delete(%v) {%v,%v} != {%v,%v}", key, o1, ok1, o2, ok2)
			}
		case op < 9:
			k1, v1, ok1 := llrb.DeleteMin()
			k2, v2, ok2 := d.DeleteMin()
			if k1 != k2 || v1 != v2 || ok1 != ok2 {
				t.Fatalf("DeleteMin() {%v,%v} != {%v,%v}", k1, ok1, k2, ok2)
			}
		default:
			k1, v1, ok1 := llrb.DeleteMax()
			k2, v2, ok2 := d.DeleteMax()
			if k1 != k2 || v1 != v2 || ok1 != ok2 {
				t.Fatalf("DeleteMax() {%v,%v} != {%v,%v}", k1, ok1, k2, ok2)
			}
		}
		checkllrb(t, llrb)
		if llrb.Count() != d.Count() {
			t.Fatalf("expected %v, got %v", d.Count(), llrb.Count())
		}
	}

	// compare full content
	keys, values := []int64{}, []interface{}{}
	for key, value := range d.Traverse(api.InOrder) {
		keys, values = append(keys, key), append(values, value)
	}
	i := 0
	for key, value := range llrb.Traverse(api.InOrder) {
		if keys[i] != key || values[i] != value {
			t.Fatalf("expected {%v,%v}, got {%v,%v}", keys[i], values[i], key, value)
		}
		i++
	}
	if i != len(keys) {
		t.Errorf("expected %v, got %v", len(keys), i)
	}
	for key := int64(0); key < 2000; key++ {
		v1, ok1 := llrb.Get(key)
		v2, ok2 := d.Get(key)
		if v1 != v2 || ok1 != ok2 || llrb.Has(key) != d.Has(key) {
			t.Fatalf("Get(%v) {%v,%v} != {%v,%v}", key, v1, ok1, v2, ok2)
		}
	}
	llrb.Validate()
}

func TestLLRBRoundTrip(t *testing.T) {
	n := 5000
	llrb := NewLLRB("roundtrip", Defaultsettings())
	keys := make([]int64, 0, n)
	for _, key := range rand.Perm(n * 4)[:n] {
		keys = append(keys, int64(key))
		llrb.Upsert(int64(key), nil)
	}
	require.Equal(t, int64(n), llrb.Count())
	llrb.Validate()

	height := llrb.Height()
	bound := 2 * math.Log2(float64(n)+1)
	require.LessOrEqual(t, float64(height), bound)

	rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for i, key := range keys {
		_, ok := llrb.Delete(key)
		require.True(t, ok, "key %v", key)
		require.False(t, llrb.Has(key))
		if i%100 == 0 {
			checkllrb(t, llrb)
		}
	}
	require.Equal(t, int64(0), llrb.Count())
	require.Equal(t, int64(0), llrb.Height())
	require.Nil(t, llrb.root)
	for _, key := range keys {
		require.False(t, llrb.Has(key))
	}
	llrb.Validate()
}

func TestLLRBHeight(t *testing.T) {
	llrb := NewLLRB("height", Defaultsettings())
	llrb.Upsert(10, nil)
	if x := llrb.Height(); x != 1 {
		t.Errorf("unexpected %v", x)
	}
	for key := int64(0); key < 1<<12; key++ {
		llrb.Upsert(key, nil)
		height, n := float64(llrb.Height()), float64(llrb.Count())
		if height > 2*math.Log2(n+1) {
			t.Fatalf("height %v exceeds bound for %v entries", height, n)
		}
	}
	stats := llrb.Fullstats()
	if x := stats["height"].(int64); x != llrb.Height() {
		t.Errorf("expected %v, got %v", llrb.Height(), x)
	}
	h := stats["h_height"].(map[string]interface{})
	if x := h["samples"].(int64); x != llrb.Count() {
		t.Errorf("expected %v, got %v", llrb.Count(), x)
	} else if x := h["max"].(int64); x != llrb.Height() {
		t.Errorf("expected %v, got %v", llrb.Height(), x)
	}
	if x := stats["n_blacks"].(int64); x < 1 {
		t.Errorf("unexpected %v", x)
	}
}

func TestLLRBClone(t *testing.T) {
	llrb := NewLLRB("clone", Defaultsettings())
	for key := int64(0); key < 1000; key++ {
		llrb.Upsert(key, key)
	}
	newllrb := llrb.Clone("cloned")
	if newllrb.ID() != "cloned" {
		t.Errorf("unexpected %v", newllrb.ID())
	} else if newllrb.Count() != llrb.Count() {
		t.Errorf("expected %v, got %v", llrb.Count(), newllrb.Count())
	} else if dotdump(newllrb) != dotdump(llrb) {
		t.Errorf("clone differs from source")
	}
	newllrb.Validate()

	// mutating the clone shall not touch the source.
	for key := int64(0); key < 1000; key += 2 {
		newllrb.Delete(key)
	}
	newllrb.Validate()
	llrb.Validate()
	if llrb.Count() != 1000 {
		t.Errorf("unexpected %v", llrb.Count())
	} else if newllrb.Count() != 500 {
		t.Errorf("unexpected %v", newllrb.Count())
	}
}

func TestLLRBDotdump(t *testing.T) {
	llrb := NewLLRB("dotdump", Defaultsettings())
	llrb.Upsert(5, nil)
	llrb.Upsert(3, nil)
	ref := "digraph llrb {\n" +
		"  node[shape=record];\n" +
		"  5 [label=\"{5}\"];\n" +
		"  5 -> 3 [color=red];\n" +
		"  3 [label=\"{3}\"];\n" +
		"}\n"
	if out := dotdump(llrb); out != ref {
		t.Errorf("expected %q, got %q", ref, out)
	}
}

func TestLLRBValidate(t *testing.T) {
	testcases := []struct {
		name string
		root *Llrbnode
		err  string
	}{
		{
			"redroot",
			&Llrbnode{key: 1},
			errRedRoot.Error(),
		},
		{
			"rightred",
			&Llrbnode{key: 1, black: true, right: &Llrbnode{key: 2}},
			errRightLeaningRed.Error(),
		},
		{
			"redafterred",
			&Llrbnode{
				key: 3, black: true,
				left:  &Llrbnode{key: 2, left: &Llrbnode{key: 1}},
				right: &Llrbnode{key: 4, black: true},
			},
			errRedAfterRed.Error(),
		},
		{
			"unbalanced",
			&Llrbnode{key: 2, black: true, left: &Llrbnode{key: 1, black: true}},
			unbalancedblacks(2, 1).Error(),
		},
		{
			"sortorder",
			&Llrbnode{
				key: 2, black: true,
				left:  &Llrbnode{key: 3, black: true},
				right: &Llrbnode{key: 4, black: true},
			},
			"validate(): sort order, node 3 is >= upper bound 2",
		},
	}
	for _, tcase := range testcases {
		t.Run(tcase.name, func(t *testing.T) {
			llrb := NewLLRB(tcase.name, Defaultsettings())
			llrb.root = tcase.root
			defer func() {
				r := recover()
				require.NotNil(t, r)
				require.Equal(t, tcase.err, r.(error).Error())
			}()
			llrb.Validate()
		})
	}
}

func TestLLRBSettings(t *testing.T) {
	llrb := NewLLRB("settings", s.Settings{"histogram.depth": int64(8)})
	if llrb.dovalidate {
		t.Errorf("unexpected validate")
	} else if llrb.maxdepth != 8 {
		t.Errorf("unexpected %v", llrb.maxdepth)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	NewLLRB("settings", s.Settings{"histogram.depth": int64(0)})
}

func TestLLRBRebalances(t *testing.T) {
	llrb := NewLLRB("rebalances", nil)
	llrb.Upsert(1, nil) // leaf at root
	llrb.Upsert(2, nil) // right leaning red, rotate left
	llrb.Upsert(3, nil) // both children red, flip

	stats := llrb.Stats()["a_rebalances"].(map[string]interface{})
	if x := stats["samples"].(int64); x != 3 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["min"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["max"].(int64); x != 1 {
		t.Errorf("unexpected %v", x)
	}

	llrb.Delete(10) // missing key is not a mutation
	llrb.DeleteMin()
	llrb.DeleteMax()
	stats = llrb.Stats()["a_rebalances"].(map[string]interface{})
	if x := stats["samples"].(int64); x != 5 {
		t.Errorf("unexpected %v", x)
	}
	sum := llrb.n_rotates + llrb.n_flips
	if x := llrb.a_rebalances.Sum(); x != sum {
		t.Errorf("expected %v, got %v", sum, x)
	}
}

func TestLLRBConcurrentReads(t *testing.T) {
	llrb := NewLLRB("concurrent", nil)
	for key := int64(0); key < 100; key++ {
		llrb.Upsert(key, key)
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			llrb.Get(int64(i % 100))
			llrb.Min()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			for range llrb.Traverse(api.InOrder) {
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			llrb.Stats()
			llrb.Fullstats()
		}
	}()
	wg.Wait()

	stats := llrb.Stats()
	if x := stats["n_lookups"].(int64); x != 2000 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_traversals"].(int64); x != 100 {
		t.Errorf("unexpected %v", x)
	}
}

var allorders = []api.Order{
	api.InOrder, api.PreOrder, api.PostOrder, api.LevelOrder,
}

func dotdump(llrb *LLRB) string {
	var buf bytes.Buffer
	llrb.Dotdump(&buf)
	return buf.String()
}

func checkextremes(t *testing.T, llrb *LLRB, min, max int64) {
	t.Helper()
	if key, _, ok := llrb.Min(); !ok || key != min {
		t.Errorf("expected min %v, got %v", min, key)
	}
	if key, _, ok := llrb.Max(); !ok || key != max {
		t.Errorf("expected max %v, got %v", max, key)
	}
}

// checkllrb walks the tree independent of validate() and confirms
// sort order, left leaning reds, no consecutive reds, black balance,
// black root and the height bound.
func checkllrb(t *testing.T, llrb *LLRB) {
	t.Helper()

	var walk func(nd *Llrbnode, parentred bool) (blacks, count, height int64)
	walk = func(nd *Llrbnode, parentred bool) (blacks, count, height int64) {
		if nd == nil {
			return 0, 0, 0
		}
		red := nd != nil && !nd.black
		if red && parentred {
			t.Fatalf("consecutive red at %v", nd.key)
		}
		if nd.right != nil && !nd.right.black {
			t.Fatalf("right leaning red at %v", nd.key)
		}
		if nd.left != nil && nd.left.key >= nd.key {
			t.Fatalf("left %v >= %v", nd.left.key, nd.key)
		}
		if nd.right != nil && nd.right.key <= nd.key {
			t.Fatalf("right %v <= %v", nd.right.key, nd.key)
		}
		lb, lc, lh := walk(nd.left, red)
		rb, rc, rh := walk(nd.right, red)
		if lb != rb {
			t.Fatalf("black imbalance at %v: %v != %v", nd.key, lb, rb)
		}
		if !red {
			lb++
		}
		if rh > lh {
			lh = rh
		}
		return lb, lc + rc + 1, lh + 1
	}

	if llrb.root != nil && !llrb.root.black {
		t.Fatalf("red root")
	}
	_, count, height := walk(llrb.root, false)
	if count != llrb.Count() {
		t.Fatalf("expected %v, got %v", llrb.Count(), count)
	}
	if count > 0 && float64(height) > 2*math.Log2(float64(count)+1) {
		t.Fatalf("height %v exceeds bound for %v entries", height, count)
	}

	// in-order shall be strictly increasing.
	prev, first := int64(0), true
	for key := range llrb.Traverse(api.InOrder) {
		if !first && key <= prev {
			t.Fatalf("in-order %v after %v", key, prev)
		}
		prev, first = key, false
	}
}
