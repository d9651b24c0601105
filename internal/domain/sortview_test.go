package domain

import (
	"reflect"
	"testing"
)

func taggedFixtures() []TaggedImage {
	return []TaggedImage{
		{CanonicalPath: "/pics/trips/cove.jpg", RelativePath: "trips/cove.jpg", Tags: NewTagSet("ireland", "coast")},
		{CanonicalPath: "/pics/dog.png", RelativePath: "dog.png", Tags: NewTagSet("dog")},
	}
}

func TestPlanSortedViewFlat(t *testing.T) {
	actions := PlanSortedView(taggedFixtures(), SortViewOptions{})
	want := []CopyAction{
		{Src: "/pics/trips/cove.jpg", Dst: "coast/cove.jpg"},
		{Src: "/pics/trips/cove.jpg", Dst: "ireland/cove.jpg"},
		{Src: "/pics/dog.png", Dst: "dog/dog.png"},
	}
	if !reflect.DeepEqual(actions, want) {
		t.Errorf("actions = %v, want %v", actions, want)
	}
}

func TestPlanSortedViewPreservesHierarchy(t *testing.T) {
	actions := PlanSortedView(taggedFixtures(), SortViewOptions{PreserveHierarchy: true})
	if actions[0].Dst != "coast/trips/cove.jpg" {
		t.Errorf("first destination = %s, want coast/trips/cove.jpg", actions[0].Dst)
	}
}

func TestPlanSortedViewTagSubset(t *testing.T) {
	actions := PlanSortedView(taggedFixtures(), SortViewOptions{Tags: NewTagSet("ireland")})
	want := []CopyAction{{Src: "/pics/trips/cove.jpg", Dst: "ireland/cove.jpg"}}
	if !reflect.DeepEqual(actions, want) {
		t.Errorf("actions = %v, want %v", actions, want)
	}
}

func TestPlanSortedViewDisambiguatesSharedBasenames(t *testing.T) {
	images := []TaggedImage{
		{CanonicalPath: "/pics/a/cove.jpg", RelativePath: "a/cove.jpg", Tags: NewTagSet("ireland")},
		{CanonicalPath: "/pics/b/cove.jpg", RelativePath: "b/cove.jpg", Tags: NewTagSet("ireland")},
	}
	actions := PlanSortedView(images, SortViewOptions{})
	want := []CopyAction{
		{Src: "/pics/a/cove.jpg", Dst: "ireland/cove.jpg"},
		{Src: "/pics/b/cove.jpg", Dst: "ireland/cove_1.jpg"},
	}
	if !reflect.DeepEqual(actions, want) {
		t.Errorf("actions = %v, want %v", actions, want)
	}
}

func TestPlanSortedViewNestsChainTags(t *testing.T) {
	images := []TaggedImage{
		{CanonicalPath: "/pics/cove.jpg", RelativePath: "cove.jpg", Tags: NewTagSet("ireland/coast")},
	}
	actions := PlanSortedView(images, SortViewOptions{})
	if len(actions) != 1 || actions[0].Dst != "ireland/coast/cove.jpg" {
		t.Errorf("actions = %v, want one copy at ireland/coast/cove.jpg", actions)
	}
}
