package server

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"docc_render/model"
	"docc_render/nav"

	"github.com/go-chi/chi/v5"
)

type navLayout struct {
	Height      int
	SmallHeight int
	AnchorID    string
}

var pageNav = navLayout{
	Height:      nav.BaseNavHeight,
	SmallHeight: nav.BaseNavHeightSmallBreakpoint,
	AnchorID:    nav.BaseNavStickyAnchorID,
}

type mountView struct {
	ID     string
	Markup template.HTML
}

type assetView struct {
	Asset model.Asset
	Mount mountView
}

func (s *Server) mountView(assetID string) (mountView, error) {
	m, err := s.app.Mount(assetID)
	if err != nil {
		return mountView{}, err
	}
	markup, err := m.Markup()
	if err != nil {
		return mountView{}, err
	}
	return mountView{ID: m.ID, Markup: markup}, nil
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("level=error event=template_failed template=%s error=%q", name, err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	var assets []model.Asset
	var err error
	if query == "" {
		assets, err = s.app.GetAll()
	} else {
		assets, err = s.app.FindByIdentifier(query)
	}
	if err != nil {
		writeMappedErr(w, err)
		return
	}

	items := make([]assetView, 0, len(assets))
	for _, a := range assets {
		mv, err := s.mountView(a.ID)
		if err != nil {
			// One broken asset should not take the whole listing down.
			log.Printf("level=warn event=mount_failed asset=%s error=%q", a.ID, err)
			continue
		}
		items = append(items, assetView{Asset: a, Mount: mv})
	}

	s.render(w, templateIndex, "index.html", struct {
		Title string
		Nav   navLayout
		Query string
		Items []assetView
	}{"Image assets", pageNav, query, items})
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	asset, err := s.app.Get(chi.URLParam(r, "assetID"))
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	mv, err := s.mountView(asset.ID)
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	s.render(w, templateShow, "asset.html", struct {
		Title string
		Nav   navLayout
		Asset model.Asset
		Mount mountView
	}{asset.Identifier, pageNav, asset, mv})
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	mv, err := s.mountView(chi.URLParam(r, "assetID"))
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Mount-ID", mv.ID)
	w.Write([]byte(mv.Markup))
}

func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	m, err := s.app.Lookup(chi.URLParam(r, "mountID"))
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := m.Render(w); err != nil {
		log.Printf("level=error event=render_failed mount=%s error=%q", m.ID, err)
	}
}

func (s *Server) handleLoadError(w http.ResponseWriter, r *http.Request) {
	m, transitioned, err := s.app.ReportLoadError(chi.URLParam(r, "mountID"))
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		MountID      string `json:"mount_id"`
		State        string `json:"state"`
		Transitioned bool   `json:"transitioned"`
	}{m.ID, m.State().String(), transitioned})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBodyBytes)
	assets, err := s.app.Import(r.Body)
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	writeJSON(w, http.StatusCreated, struct {
		IDs []string `json:"ids"`
	}{ids})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	var assets []model.Asset
	var err error
	if q := r.URL.Query().Get("q"); q != "" {
		assets, err = s.app.FindByIdentifier(q)
	} else {
		assets, err = s.app.GetAll()
	}
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := s.app.Get(chi.URLParam(r, "assetID"))
	if err != nil {
		writeMappedErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset model.Asset
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAssetBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&asset); err != nil {
		writeErr(w, http.StatusBadRequest, "BAD_JSON", err.Error())
		return
	}
	if err := s.app.Add(&asset); err != nil {
		writeMappedErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Delete(chi.URLParam(r, "assetID")); err != nil {
		writeMappedErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
