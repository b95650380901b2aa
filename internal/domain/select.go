package domain

// SelectMostRelevant picks the object with the smallest miss distance among
// objects that have a close approach. Ties keep the earliest object. When no
// object has a close approach the first object is returned, ignoring the
// distance criterion.
func SelectMostRelevant(objects []NearEarthObject) (NearEarthObject, error) {
	if len(objects) == 0 {
		return NearEarthObject{}, ErrNoObjectsFound
	}

	best := -1
	for i := range objects {
		ca := objects[i].CloseApproach
		if ca == nil {
			continue
		}
		if best < 0 || ca.MissDistanceKm < objects[best].CloseApproach.MissDistanceKm {
			best = i
		}
	}

	if best < 0 {
		return objects[0], nil
	}
	return objects[best], nil
}
